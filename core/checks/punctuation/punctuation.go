// Package punctuation inventories the punctuation patterns found between
// words, such as ",_" or ".”_“", and flags those not listed as valid.
package punctuation

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/quotemarks"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("3b8f61d2-95a4-4c7e-a2d0-e4f7c19b5a83")

// Name is the display name of the check.
const Name = "Punctuation"

// Parameters read by the check.
const (
	ParamLevel          = "PunctCheckLevel"
	ParamWhitespaceChar = "PunctWhitespaceChar"
	ParamPatterns       = "PunctuationPatterns"
	ParamValid          = "ValidPunctuation"
	ParamInvalid        = "InvalidPunctuation"

	DefaultWhitespaceChar = "_"
)

const (
	msgInvalid     = "Invalid punctuation pattern"
	msgUnspecified = "Unspecified use of punctuation pattern"
)

// Checker finds punctuation patterns.
type Checker struct {
	src       checks.ParameterSource
	inventory *checks.Inventory
}

var _ checks.InventoryChecker = (*Checker)(nil)

// New creates a punctuation checker. PunctuationPatterns, when present,
// takes precedence over the ValidPunctuation and InvalidPunctuation lists.
func New(src checks.ParameterSource) *Checker {
	inv := checks.NewInventory(src, ParamValid, ParamInvalid)
	loadInventory(src, inv)
	return &Checker{src: src, inventory: inv}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// Inventory returns the editable valid and invalid pattern lists.
func (c *Checker) Inventory() *checks.Inventory { return c.inventory }

// Check reports every pattern that is not on the valid list.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	valid := checks.ParamSet(c.inventory.ValidItems())
	invalid := checks.ParamSet(c.inventory.InvalidItems())
	msgBad := checks.Message(c.src, msgInvalid)
	msgUnknown := checks.Message(c.src, msgUnspecified)
	c.scan(tokens, func(sub checks.TokenSubstring) {
		switch {
		case valid[sub.InventoryText]:
		case invalid[sub.InventoryText]:
			record(sub.WithMessage(msgBad), ID)
		default:
			record(sub.WithMessage(msgUnknown), ID)
		}
	})
}

// References returns every occurrence of the pattern key, or every
// pattern when key is empty.
func (c *Checker) References(tokens iter.Seq[checks.Token], key string) []checks.TokenSubstring {
	var refs []checks.TokenSubstring
	c.scan(tokens, func(sub checks.TokenSubstring) {
		if key == "" || sub.InventoryText == key {
			refs = append(refs, sub)
		}
	})
	return refs
}

// config is read once per scan.
type config struct {
	cat    checks.CharacterCategorizer
	quotes *quotemarks.Info
	level  Level
	ws     string
}

func (c *Checker) loadConfig() *config {
	level, err := ParseLevel(c.src.ParameterValue(ParamLevel))
	if err != nil {
		logging.ConfigError(ParamLevel, err)
	}
	ws := checks.ParamOrDefault(c.src, ParamWhitespaceChar, DefaultWhitespaceChar)
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(ws)); r != utf8.RuneError {
		ws = string(r)
	} else {
		ws = DefaultWhitespaceChar
	}
	return &config{
		cat:    c.src.Categorizer(),
		quotes: quotemarks.FromSource(c.src),
		level:  level,
		ws:     ws,
	}
}

func (c *Checker) scan(tokens iter.Seq[checks.Token], found func(checks.TokenSubstring)) {
	cfg := c.loadConfig()
	body := newProcessor(cfg, found)
	note := newProcessor(cfg, found)

	inNote := false
	for i, tok := range checks.Indexed(tokens) {
		tt := tok.TextType()
		if tt == checks.TextTypeNote {
			if tok.IsNoteStart() {
				note.finish()
			}
			inNote = true
			note.process(tok, i)
			continue
		}
		if inNote {
			note.finish()
			inNote = false
		}
		if tt == checks.TextTypePictureCaption {
			continue
		}
		// A paragraph start ends the run.
		if tok.IsParagraphStart() {
			body.finish()
		}
		if tt.IsNumber() {
			body.spaceToken(tok, i)
			continue
		}
		body.process(tok, i)
	}
	note.finish()
	body.finish()
}

// class is the role of a character in a pattern.
type class int

const (
	classWord class = iota
	classDigit
	classSpace
	classPunct
)

func (cfg *config) classify(r rune) class {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsDigit(r):
		return classDigit
	case cfg.cat.IsWordFormingCharacter(r):
		return classWord
	}
	return classPunct
}

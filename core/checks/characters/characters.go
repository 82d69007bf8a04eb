// Package characters flags characters (with their diacritics) that are not
// in the valid character inventory of the text's locale.
package characters

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/internal/cache"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("5e3b6c02-1a4f-4b4e-a9a4-2d6f0c9b7e13")

// Name is the display name of the check.
const Name = "Characters"

// Parameters read by the check.
const (
	ParamValidCharacters   = "ValidCharacters"
	ParamInvalidCharacters = "InvalidCharacters"
	ParamAlwaysValid       = "AlwaysValidCharacters"
)

// DefaultAlwaysValid is used when AlwaysValidCharacters is not set.
const DefaultAlwaysValid = " \r\n*+\x000123456789"

const msgInvalidCharacter = "Invalid or unknown character"

// Checker finds invalid characters.
type Checker struct {
	src       checks.ParameterSource
	inventory *checks.Inventory
}

var _ checks.InventoryChecker = (*Checker)(nil)

// New creates a characters checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{
		src:       src,
		inventory: checks.NewInventory(src, ParamValidCharacters, ParamInvalidCharacters),
	}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// Inventory returns the editable valid character list of the main locale.
func (c *Checker) Inventory() *checks.Inventory { return c.inventory }

// LocaleParameter returns the name of the valid character list for locale.
func LocaleParameter(locale string) string {
	if locale == "" {
		return ParamValidCharacters
	}
	return ParamValidCharacters + "_" + locale
}

// validator answers validity questions for one run. Locale lists are
// loaded on first use.
type validator struct {
	always  map[string]bool
	main    map[string]bool
	src     checks.ParameterSource
	locales *cache.Cache[string, map[string]bool]
}

func (c *Checker) newValidator() *validator {
	always := make(map[string]bool)
	for _, r := range checks.ParamOrDefault(c.src, ParamAlwaysValid, DefaultAlwaysValid) {
		always[string(r)] = true
	}
	return &validator{
		always:  always,
		main:    checks.ParamSet(c.inventory.ValidItems()),
		src:     c.src,
		locales: cache.New[string, map[string]bool](0),
	}
}

func (v *validator) valid(seq, locale string) bool {
	if v.always[seq] {
		return true
	}
	if locale == "" {
		return v.main[seq]
	}
	set := v.locales.GetOrLoad(locale, func(locale string) map[string]bool {
		value := v.src.ParameterValue(LocaleParameter(locale))
		if strings.TrimSpace(value) == "" {
			return v.main
		}
		return checks.ParamSet(value)
	})
	return set[seq]
}

// Check reports every character sequence that is not valid for its
// token's locale.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	v := c.newValidator()
	msg := checks.Message(c.src, msgInvalidCharacter)
	c.scan(tokens, func(sub checks.TokenSubstring, locale string) {
		if !v.valid(sub.InventoryText, locale) {
			record(sub.WithMessage(msg), ID)
		}
	})
}

// References returns every occurrence of the character sequence key, valid
// or not, or every sequence when key is empty.
func (c *Checker) References(tokens iter.Seq[checks.Token], key string) []checks.TokenSubstring {
	var refs []checks.TokenSubstring
	c.scan(tokens, func(sub checks.TokenSubstring, _ string) {
		if key == "" || sub.InventoryText == key {
			refs = append(refs, sub)
		}
	})
	return refs
}

func (c *Checker) scan(tokens iter.Seq[checks.Token], found func(checks.TokenSubstring, string)) {
	cat := c.src.Categorizer()
	for i, tok := range checks.Indexed(tokens) {
		text := tok.Text()
		for start, end := range Sequences(cat, text) {
			sub := checks.NewTokenSubstring(tok, i, start, end-start)
			found(sub.WithKey(text[start:end]), tok.Locale())
		}
	}
}

// Sequences yields the [start, end) byte ranges of each character of text
// together with its diacritics. Diacritics attach to the preceding base
// character, or to the following one when the writing system types them
// first.
func Sequences(cat checks.CharacterCategorizer, text string) iter.Seq2[int, int] {
	follow := cat.DiacriticsFollowBaseCharacters()
	return func(yield func(int, int) bool) {
		i := 0
		for i < len(text) {
			start := i
			r, size := utf8.DecodeRuneInString(text[i:])
			i += size
			if follow {
				if !cat.IsDiacritic(r) {
					i = skipDiacritics(cat, text, i)
				}
			} else if cat.IsDiacritic(r) {
				i = skipDiacritics(cat, text, i)
				if i < len(text) {
					_, size = utf8.DecodeRuneInString(text[i:])
					i += size
				}
			}
			if !yield(start, i) {
				return
			}
		}
	}
}

func skipDiacritics(cat checks.CharacterCategorizer, text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !cat.IsDiacritic(r) {
			break
		}
		i += size
	}
	return i
}

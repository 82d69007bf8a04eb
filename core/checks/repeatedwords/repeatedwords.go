// Package repeatedwords flags a word that directly repeats the previous
// word with only whitespace between them ("the the").
package repeatedwords

import (
	"iter"
	"unicode"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("72b75a4b-6f3b-4f5e-9d4c-0b6c1d58e2a1")

// Name is the display name of the check.
const Name = "Repeated Words"

// Parameters read by the check.
const (
	ParamRepeatable    = "RepeatableWords"
	ParamNonRepeatable = "NonRepeatableWords"
)

const msgRepeatedWord = "Repeated word"

// Checker finds repeated words.
type Checker struct {
	src       checks.ParameterSource
	inventory *checks.Inventory
}

var _ checks.InventoryChecker = (*Checker)(nil)

// New creates a repeated-words checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{
		src:       src,
		inventory: checks.NewInventory(src, ParamRepeatable, ParamNonRepeatable),
	}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// Inventory returns the editable list of validly repeatable words.
func (c *Checker) Inventory() *checks.Inventory { return c.inventory }

// Check reports every repetition of a word not listed as repeatable.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	valid := checks.ParamSet(c.inventory.ValidItems())
	msg := checks.Message(c.src, msgRepeatedWord)
	c.scan(tokens, func(sub checks.TokenSubstring) {
		if valid[sub.InventoryText] {
			return
		}
		record(sub.WithMessage(msg), ID)
	})
}

// References returns every repetition whose lower-cased word equals key,
// or every repetition when key is empty.
func (c *Checker) References(tokens iter.Seq[checks.Token], key string) []checks.TokenSubstring {
	var refs []checks.TokenSubstring
	c.scan(tokens, func(sub checks.TokenSubstring) {
		if key == "" || sub.InventoryText == key {
			refs = append(refs, sub)
		}
	})
	return refs
}

// run is the word state of one run of text (body, note or caption).
type run struct {
	prev     string
	adjacent bool
}

func (r *run) reset() { *r = run{} }

func (c *Checker) scan(tokens iter.Seq[checks.Token], found func(checks.TokenSubstring)) {
	cat := c.src.Categorizer()
	var body, note, caption run
	inCaption := false

	for i, tok := range checks.Indexed(tokens) {
		tt := tok.TextType()
		if tt != checks.TextTypePictureCaption && inCaption {
			inCaption = false
			body.reset()
		}

		var r *run
		switch tt {
		case checks.TextTypeChapterNumber:
			body.reset()
			continue
		case checks.TextTypeVerseNumber:
			if tok.IsParagraphStart() {
				body.reset()
			}
			continue
		case checks.TextTypeNote:
			if tok.IsNoteStart() {
				note.reset()
			}
			r = &note
		case checks.TextTypePictureCaption:
			if !inCaption {
				inCaption = true
				caption.reset()
			}
			r = &caption
		default:
			if tok.IsParagraphStart() {
				body.reset()
			}
			r = &body
		}

		for _, wp := range cat.WordAndPuncts(tok.Text()) {
			if wp.Word == "" || isNumber(wp.Word) {
				r.reset()
				continue
			}
			word := cat.ToLower(wp.Word)
			if r.adjacent && word == r.prev {
				sub := checks.NewTokenSubstring(tok, i, wp.Offset, len(wp.Word))
				found(sub.WithKey(word))
			}
			r.prev = word
			r.adjacent = wp.Punct == ""
		}
	}
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

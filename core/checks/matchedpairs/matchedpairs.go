// Package matchedpairs flags opening and closing punctuation (parentheses,
// brackets, braces) left unmatched within a paragraph, a footnote or the
// body text, and pairs that overlap instead of nesting.
package matchedpairs

import (
	"iter"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("a1f6d0c4-8e2b-4a57-b1c3-96e0f2d47b58")

// Name is the display name of the check.
const Name = "Matched Pairs"

// Parameters read by the check.
const (
	ParamMatchedPairs    = "MatchedPairs"
	ParamIntroOutline    = "IntroductionOutlineStyles"
	ParamValidItems      = "MatchedPairsValidItems"
	ParamInvalidItems    = "MatchedPairsInvalidItems"
	DefaultIntroOutlines = "Intro_List_Item1 io1 io2 io3"
)

const (
	msgOverlapping = "Overlapping pair"
	msgUnmatched   = "Unmatched punctuation"
)

// Checker finds unmatched and overlapping pairs.
type Checker struct {
	src       checks.ParameterSource
	inventory *checks.Inventory
}

var _ checks.InventoryChecker = (*Checker)(nil)

// New creates a matched-pairs checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{
		src:       src,
		inventory: checks.NewInventory(src, ParamValidItems, ParamInvalidItems),
	}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// Inventory returns the editable list of characters accepted unmatched.
func (c *Checker) Inventory() *checks.Inventory { return c.inventory }

// item is a pending pair character.
type item struct {
	sub  checks.TokenSubstring
	pair int
	open bool
}

// run holds the pending items of the body or of one footnote.
type run struct {
	items []item
}

// scanner carries the per-call state shared by the body and note runs.
type scanner struct {
	table       pairTable
	introStyles map[string]bool
	unmatched   func(checks.TokenSubstring)
	overlapping func(checks.TokenSubstring)
}

// Check reports overlapping pairs and unmatched pair characters that are
// not listed as valid.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	valid := checks.ParamSet(c.inventory.ValidItems())
	unmatched := checks.Message(c.src, msgUnmatched)
	overlapping := checks.Message(c.src, msgOverlapping)
	c.scan(tokens,
		func(sub checks.TokenSubstring) {
			if !valid[sub.InventoryText] {
				record(sub.WithMessage(unmatched), ID)
			}
		},
		func(sub checks.TokenSubstring) {
			record(sub.WithMessage(overlapping), ID)
		})
}

// References returns every unmatched occurrence of the character key, or
// every unmatched character when key is empty.
func (c *Checker) References(tokens iter.Seq[checks.Token], key string) []checks.TokenSubstring {
	var refs []checks.TokenSubstring
	c.scan(tokens, func(sub checks.TokenSubstring) {
		if key == "" || sub.InventoryText == key {
			refs = append(refs, sub)
		}
	}, func(checks.TokenSubstring) {})
	return refs
}

func (c *Checker) scan(tokens iter.Seq[checks.Token], unmatched, overlapping func(checks.TokenSubstring)) {
	s := &scanner{
		table:       newPairTable(pairsFromSource(c.src)),
		introStyles: checks.ParamSet(checks.ParamOrDefault(c.src, ParamIntroOutline, DefaultIntroOutlines)),
		unmatched:   unmatched,
		overlapping: overlapping,
	}
	cat := c.src.Categorizer()

	var body, note run
	inNote := false
	for i, tok := range checks.Indexed(tokens) {
		tt := tok.TextType()
		if tt == checks.TextTypeNote {
			if tok.IsNoteStart() {
				s.finish(&note)
			}
			inNote = true
			s.process(&note, tok, i, -1)
			continue
		}
		if inNote {
			s.finish(&note)
			inNote = false
		}
		if tt == checks.TextTypePictureCaption {
			continue
		}
		if tok.IsParagraphStart() {
			s.paragraphBreak(&body)
		}
		if tt.IsNumber() {
			continue
		}

		// In outline paragraphs "1)" or "a)" is numbering, not a pair.
		introEnd := -1
		if tok.IsParagraphStart() && s.introStyles[tok.ParaStyleName()] {
			if wps := cat.WordAndPuncts(tok.Text()); len(wps) > 0 {
				introEnd = wps[0].End()
			}
		}
		s.process(&body, tok, i, introEnd)
	}
	s.finish(&note)
	s.finish(&body)
}

func (s *scanner) process(r *run, tok checks.Token, index, introEnd int) {
	text := tok.Text()
	for off, ch := range text {
		char := string(ch)
		if n := len(r.items); n > 0 {
			top := r.items[n-1]
			if top.open && s.table.pairs[top.pair].Close == char {
				r.items = r.items[:n-1]
				continue
			}
		}
		pi, isOpen := s.table.openers[char]
		if !isOpen {
			var isClose bool
			pi, isClose = s.table.closers[char]
			if !isClose {
				continue
			}
			if off < introEnd {
				continue
			}
		}
		r.items = append(r.items, item{
			sub:  checks.NewTokenSubstring(tok, index, off, utf8.RuneLen(ch)).WithKey(char),
			pair: pi,
			open: isOpen,
		})
		s.checkOverlap(r)
	}
}

// checkOverlap reports the last four items when they are two openers
// followed by their closers in the same order, as in "( [ ) ]".
func (s *scanner) checkOverlap(r *run) {
	n := len(r.items)
	if n < 4 {
		return
	}
	o1, o2, c1, c2 := r.items[n-4], r.items[n-3], r.items[n-2], r.items[n-1]
	if !o1.open || !o2.open || c1.open || c2.open || c1.pair != o1.pair || c2.pair != o2.pair {
		return
	}
	for _, it := range r.items[n-4:] {
		s.overlapping(it.sub)
	}
	r.items = r.items[:n-4]
}

// paragraphBreak reports pending items except openers of pairs allowed to
// span paragraphs.
func (s *scanner) paragraphBreak(r *run) {
	kept := r.items[:0]
	for _, it := range r.items {
		if it.open && s.table.pairs[it.pair].PermitParaSpanning {
			kept = append(kept, it)
			continue
		}
		s.unmatched(it.sub)
	}
	r.items = kept
}

func (s *scanner) finish(r *run) {
	for _, it := range r.items {
		s.unmatched(it.sub)
	}
	r.items = nil
}

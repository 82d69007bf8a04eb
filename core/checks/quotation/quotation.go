// Package quotation checks the nesting of quotation marks: unmatched
// opening and closing marks, skipped levels, and paragraphs that fail to
// repeat the marks of a quotation they continue.
package quotation

import (
	"iter"
	"strings"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/quotemarks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/styles"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("7e9c4f1a-2b6d-4d83-8f0e-c5a1b3d92e64")

// Name is the display name of the check.
const Name = "Quotations"

// ParamVerbose turns on annotations for every quotation event.
const ParamVerbose = "VerboseQuotes"

const (
	msgUnmatchedOpening  = "Unmatched opening mark: level %d"
	msgUnmatchedClosing  = "Unmatched closing mark: level %d"
	msgMissingOpening    = "Missing opening mark: level %d"
	msgMissingOpenings   = "Missing opening marks: levels %d-%d"
	msgMissingContinuer  = "Missing continuation mark: level %d"
	msgMissingContinuers = "Missing continuation marks: levels %d-%d"
	msgOpened            = "Level %d quote opened"
	msgClosed            = "Level %d quote closed"
	msgContinued         = "Level %d quote continued"
)

// Checker tracks quotation nesting.
type Checker struct {
	src checks.ParameterSource
}

var _ checks.Checker = (*Checker)(nil)

// New creates a quotation checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{src: src}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// event is a paragraph start or a quotation mark collected from a run.
type event struct {
	sub  checks.TokenSubstring
	para bool

	mark      string
	open      bool
	continuer bool // precedes all other text of a paragraph-initial token
}

type collector struct {
	q   *quotemarks.Info
	cat checks.CharacterCategorizer
}

// Check collects the paragraph starts and marks of the body and of each
// footnote, then walks each run once it is complete.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	q := quotemarks.FromSource(c.src)
	if q.Depth() == 0 {
		return
	}
	st := styles.FromSource(c.src)
	col := &collector{q: q, cat: c.src.Categorizer()}
	w := &walker{
		q:       q,
		verbose: checks.ParamBool(c.src, ParamVerbose),
		report: func(sub checks.TokenSubstring, key string, args ...any) {
			record(sub.WithMessage(checks.Message(c.src, key, args...)), ID)
		},
	}

	var body, note []event
	inNote := false
	for i, tok := range checks.Indexed(checks.ParagraphStarts(tokens)) {
		tt := tok.TextType()
		if tt == checks.TextTypeNote {
			if tok.IsNoteStart() {
				w.walk(note)
				note = nil
			}
			inNote = true
			note = col.add(note, tok, i)
			continue
		}
		if inNote {
			w.walk(note)
			note = nil
			inNote = false
		}
		if tt == checks.TextTypePictureCaption || tt.IsNumber() {
			continue
		}
		if !st.CarriesQuotes(tok.ParaStyleName()) {
			continue
		}
		body = col.add(body, tok, i)
	}
	w.walk(note)
	w.walk(body)
}

func (c *collector) add(events []event, tok checks.Token, index int) []event {
	text := tok.Text()
	paraStart := tok.IsParagraphStart()
	if paraStart {
		sub := checks.NewTokenSubstring(tok, index, 0, 0)
		if wps := c.cat.WordAndPuncts(text); len(wps) > 0 {
			sub = checks.NewTokenSubstring(tok, index, wps[0].Offset, wps[0].End()-wps[0].Offset)
		}
		events = append(events, event{sub: sub, para: true})
	}

	leading := paraStart
	prev := 0
	for _, loc := range c.q.FindAll(text) {
		start, end := loc[0], loc[1]
		if leading && strings.TrimSpace(text[prev:start]) != "" {
			leading = false
		}
		mark := text[start:end]
		events = append(events, event{
			sub:       checks.NewTokenSubstring(tok, index, start, end-start).WithKey(mark),
			mark:      mark,
			open:      c.q.Opens(text, start, end),
			continuer: leading,
		})
		prev = end
	}
	return events
}

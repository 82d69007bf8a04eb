package punctuation

import (
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
)

type elemKind int

const (
	elemSpace elemKind = iota
	elemPunct
	elemQuoteSep // whitespace between two quotes of the same direction
)

// element is one piece of the gap between two words. Virtual elements
// stand for paragraph boundaries and have no text position.
type element struct {
	kind    elemKind
	text    string
	tok     checks.Token
	index   int
	offset  int
	virtual bool
}

func (e element) spacing() bool { return e.kind != elemPunct }

// processor accumulates the gap since the last word of one run.
type processor struct {
	cfg   *config
	found func(checks.TokenSubstring)

	elems     []element
	prevDigit bool
}

func newProcessor(cfg *config, found func(checks.TokenSubstring)) *processor {
	p := &processor{cfg: cfg, found: found}
	p.reset()
	return p
}

func (p *processor) reset() {
	p.elems = append(p.elems[:0], element{kind: elemSpace, virtual: true})
	p.prevDigit = false
}

// boundary adds a paragraph break, which acts as whitespace.
func (p *processor) boundary() {
	p.elems = append(p.elems, element{kind: elemSpace, virtual: true})
}

// spaceToken adds a whole token (a chapter or verse number) as whitespace.
func (p *processor) spaceToken(tok checks.Token, index int) {
	p.elems = append(p.elems, element{kind: elemSpace, text: tok.Text(), tok: tok, index: index})
}

func (p *processor) process(tok checks.Token, index int) {
	text := tok.Text()
	for off, r := range text {
		switch p.cfg.classify(r) {
		case classWord:
			p.flush(false)
			p.prevDigit = false
		case classDigit:
			p.flush(true)
			p.prevDigit = true
		case classSpace:
			p.elems = append(p.elems, element{kind: elemSpace, text: string(r), tok: tok, index: index, offset: off})
		case classPunct:
			p.punct(tok, index, off, r)
		}
	}
}

// punct appends a punctuation mark, extending a run of periods.
func (p *processor) punct(tok checks.Token, index, off int, r rune) {
	if r == '.' {
		if n := len(p.elems); n > 0 {
			last := &p.elems[n-1]
			if last.kind == elemPunct && !last.virtual && last.index == index &&
				last.offset+len(last.text) == off && strings.Trim(last.text, ".") == "" {
				last.text += "."
				return
			}
		}
	}
	p.elems = append(p.elems, element{kind: elemPunct, text: string(r), tok: tok, index: index, offset: off})
}

// finish ends the run: the end acts as whitespace after the last gap.
func (p *processor) finish() {
	p.boundary()
	p.flush(false)
	p.reset()
}

// flush turns the gap ending before a word (or at the end of the run) into
// patterns. nextDigit reports whether that word starts with a digit.
func (p *processor) flush(nextDigit bool) {
	elems := p.elems
	p.elems = p.elems[:0]

	hasPunct := false
	for _, e := range elems {
		if e.kind == elemPunct {
			hasPunct = true
			break
		}
	}
	if !hasPunct {
		return
	}
	// "3:14", "1,000"
	if len(elems) == 1 && p.prevDigit && nextDigit && utf8.RuneCountInString(elems[0].text) == 1 {
		return
	}
	p.markQuoteSeparators(elems)

	switch p.cfg.level {
	case Basic:
		p.basic(elems)
	case Advanced:
		p.emit(elems, p.render(elems))
	default:
		p.intermediate(elems)
	}
}

func (p *processor) markQuoteSeparators(elems []element) {
	q := p.cfg.quotes
	for i := 1; i+1 < len(elems); i++ {
		if elems[i].kind != elemSpace {
			continue
		}
		// Collapse a run of whitespace to the quotes on either side.
		j := i
		for j+1 < len(elems) && elems[j+1].kind == elemSpace {
			j++
		}
		if j+1 >= len(elems) {
			return
		}
		before, after := elems[i-1], elems[j+1]
		if before.kind == elemPunct && after.kind == elemPunct {
			bothOpen := q.IsOpener(before.text) && !q.IsCloser(before.text) &&
				q.IsOpener(after.text) && !q.IsCloser(after.text)
			bothClose := q.IsCloser(before.text) && !q.IsOpener(before.text) &&
				q.IsCloser(after.text) && !q.IsOpener(after.text)
			if bothOpen || bothClose {
				for k := i; k <= j; k++ {
					elems[k].kind = elemQuoteSep
				}
			}
		}
		i = j
	}
}

// render writes elems as a pattern, with one placeholder for each stretch
// of whitespace.
func (p *processor) render(elems []element) string {
	var sb strings.Builder
	spaced := false
	for _, e := range elems {
		if e.kind == elemPunct {
			sb.WriteString(e.text)
			spaced = false
			continue
		}
		if !spaced {
			sb.WriteString(p.cfg.ws)
			spaced = true
		}
	}
	return sb.String()
}

func (p *processor) basic(elems []element) {
	for i, e := range elems {
		if e.kind != elemPunct {
			continue
		}
		pattern := e.text
		if i > 0 && elems[i-1].spacing() {
			pattern = p.cfg.ws + pattern
		}
		if i+1 < len(elems) && elems[i+1].spacing() {
			pattern += p.cfg.ws
		}
		p.emit(elems[i:i+1], pattern)
	}
}

func (p *processor) intermediate(elems []element) {
	for i := 0; i < len(elems); {
		if elems[i].kind == elemSpace {
			i++
			continue
		}
		j := i
		for j < len(elems) && elems[j].kind != elemSpace {
			j++
		}
		pattern := p.render(elems[i:j])
		if i > 0 {
			pattern = p.cfg.ws + pattern
		}
		if j < len(elems) {
			pattern += p.cfg.ws
		}
		p.emit(elems[i:j], pattern)
		i = j
	}
}

// emit reports pattern over the text positions of elems.
func (p *processor) emit(elems []element, pattern string) {
	var sub checks.TokenSubstring
	started := false
	for _, e := range elems {
		if e.virtual {
			continue
		}
		if !started {
			sub = checks.NewTokenSubstring(e.tok, e.index, e.offset, len(e.text))
			started = true
			continue
		}
		if !sub.Extend(e.tok, e.index, e.offset+len(e.text)) {
			break
		}
	}
	if !started {
		return
	}
	p.found(sub.WithKey(pattern))
}

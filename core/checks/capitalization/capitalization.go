// Package capitalization flags lower-case letters where a capital is
// expected: at the start of sentences, of paragraphs whose style requires
// one, and of character style runs such as proper nouns.
package capitalization

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/styles"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("0f3d2b8e-7c41-4d9a-8e65-1b7a9c3f5d20")

// Name is the display name of the check.
const Name = "Capitalization"

// Parameters read by the check.
const (
	ParamSentenceFinal = "SentenceFinalPunctuation"
	ParamAbbreviations = "Abbreviations"
)

// DefaultSentenceFinal is used when SentenceFinalPunctuation is not set.
const DefaultSentenceFinal = ".?!"

const (
	msgSentence       = "Sentence should begin with a capital letter"
	msgParagraph      = "Paragraph should begin with a capital letter"
	msgHeading        = "Heading should begin with a capital letter"
	msgTitle          = "Title should begin with a capital letter"
	msgList           = "List paragraphs should begin with a capital letter"
	msgTable          = "Table contents should begin with a capital letter"
	msgProperNoun     = "Proper nouns should begin with a capital letter"
	msgCharacterStyle = "Character style should begin with a capital letter"
)

// Checker finds missing capitals.
type Checker struct {
	src checks.ParameterSource
}

var _ checks.Checker = (*Checker)(nil)

// New creates a capitalization checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{src: src}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// config is read once per Check.
type config struct {
	cat           checks.CharacterCategorizer
	styles        styles.Styles
	sentenceFinal map[rune]bool
	abbreviations []string
}

func (c *Checker) loadConfig() *config {
	cfg := &config{
		cat:           c.src.Categorizer(),
		styles:        styles.FromSource(c.src),
		sentenceFinal: make(map[rune]bool),
		abbreviations: checks.ParamList(c.src.ParameterValue(ParamAbbreviations)),
	}
	for _, r := range checks.ParamOrDefault(c.src, ParamSentenceFinal, DefaultSentenceFinal) {
		if !unicode.IsSpace(r) {
			cfg.sentenceFinal[r] = true
		}
	}
	return cfg
}

// Check reports each lower-case letter that should be a capital. Body text
// and footnotes are tracked separately; picture captions are not checked.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	cfg := c.loadConfig()
	emit := func(sub checks.TokenSubstring, key string) {
		record(sub.WithMessage(checks.Message(c.src, key)), ID)
	}
	body := newProcessor(cfg, emit)
	note := newProcessor(cfg, emit)

	for i, tok := range checks.Indexed(checks.ParagraphStarts(tokens)) {
		switch tok.TextType() {
		case checks.TextTypeVerse, checks.TextTypeOther:
			body.process(tok, i)
		case checks.TextTypeNote:
			if tok.IsNoteStart() {
				note.reset()
			}
			note.process(tok, i)
		}
	}
}

// processor tracks where a capital is expected within one run of text.
type processor struct {
	cfg  *config
	emit func(checks.TokenSubstring, string)

	sentenceStart bool
	paraMsg       string // pending paragraph requirement
	charMsg       string // pending character style requirement
	charStyle     string
}

func newProcessor(cfg *config, emit func(checks.TokenSubstring, string)) *processor {
	p := &processor{cfg: cfg, emit: emit}
	p.reset()
	return p
}

func (p *processor) reset() {
	p.sentenceStart = true
	p.paraMsg = ""
	p.charMsg = ""
	p.charStyle = ""
}

func paragraphMessage(reason styles.Reason) string {
	switch reason {
	case styles.SentenceInitial:
		return msgParagraph
	case styles.Heading:
		return msgHeading
	case styles.Title:
		return msgTitle
	case styles.List:
		return msgList
	case styles.Table:
		return msgTable
	case styles.ProperNoun:
		return msgProperNoun
	}
	return ""
}

func characterMessage(reason styles.Reason) string {
	switch reason {
	case styles.ProperNoun:
		return msgProperNoun
	case styles.Special:
		return ""
	}
	return msgCharacterStyle
}

func (p *processor) process(tok checks.Token, index int) {
	if tok.IsParagraphStart() {
		p.charStyle = ""
		p.charMsg = ""
		p.paraMsg = ""
		if info, ok := p.cfg.styles.Paragraph(tok.ParaStyleName()); ok {
			p.paraMsg = paragraphMessage(info.Reason)
			if info.Reason != styles.Special {
				p.sentenceStart = true
			}
		}
	}
	if cs := tok.CharStyleName(); cs != p.charStyle {
		p.charStyle = cs
		p.charMsg = ""
		if info, ok := p.cfg.styles.Character(cs); ok {
			p.charMsg = characterMessage(info.Reason)
		}
	}

	cat := p.cfg.cat
	text := blankAbbreviations(cat, tok.Text(), p.cfg.abbreviations)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case cat.IsDiacritic(r):
		case cat.IsWordFormingCharacter(r) || unicode.IsDigit(r):
			if p.expecting() {
				if cat.IsLower(r) && !cat.IsUpper(r) && !cat.IsTitle(r) {
					end := i + size
					for end < len(text) {
						d, dsize := utf8.DecodeRuneInString(text[end:])
						if !cat.IsDiacritic(d) {
							break
						}
						end += dsize
					}
					p.emit(checks.NewTokenSubstring(tok, index, i, end-i), p.message())
				}
				p.sentenceStart = false
				p.paraMsg = ""
				p.charMsg = ""
			}
		case p.cfg.sentenceFinal[r]:
			next, _ := utf8.DecodeRuneInString(text[i+size:])
			if i+size >= len(text) || !unicode.IsDigit(next) {
				p.sentenceStart = true
			}
		}
		i += size
	}
}

func (p *processor) expecting() bool {
	return p.sentenceStart || p.paraMsg != "" || p.charMsg != ""
}

// message picks the most specific pending requirement.
func (p *processor) message() string {
	switch {
	case p.paraMsg != "":
		return p.paraMsg
	case p.charMsg != "":
		return p.charMsg
	}
	return msgSentence
}

// blankAbbreviations replaces each listed abbreviation that starts a word
// with spaces of the same byte length, so its period never ends a
// sentence and offsets are unchanged.
func blankAbbreviations(cat checks.CharacterCategorizer, text string, abbreviations []string) string {
	if len(abbreviations) == 0 {
		return text
	}
	b := []byte(text)
	for _, abbr := range abbreviations {
		from := 0
		for {
			at := strings.Index(text[from:], abbr)
			if at < 0 {
				break
			}
			at += from
			from = at + len(abbr)
			if at > 0 {
				prev, _ := utf8.DecodeLastRuneInString(text[:at])
				if cat.IsWordFormingCharacter(prev) {
					continue
				}
			}
			for k := at; k < at+len(abbr); k++ {
				b[k] = ' '
			}
		}
	}
	return string(b)
}

// Package checktest builds token streams and parameter sources for checker
// tests.
package checktest

import (
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/settings"
)

// Builder appends tokens the way a USFM reader would produce them. Every
// token carries the current paragraph style, locale and reference.
type Builder struct {
	tokens    []checks.Token
	book      string
	chapter   int
	verse     int
	para      string
	locale    string
	paraStart bool
}

// NewBuilder starts a token stream for book.
func NewBuilder(book string) *Builder {
	return &Builder{book: book, para: "p"}
}

// Para starts a new paragraph; the next token is paragraph initial.
func (b *Builder) Para(style string) *Builder {
	b.para = style
	b.paraStart = true
	return b
}

// Locale sets the locale of following tokens ("" is the main locale).
func (b *Builder) Locale(locale string) *Builder {
	b.locale = locale
	return b
}

// Chapter appends a chapter number token.
func (b *Builder) Chapter(num string) *Builder {
	if n, err := strconv.Atoi(num); err == nil {
		b.chapter = n
		b.verse = 0
	}
	return b.add(checks.TextTypeChapterNumber, num, "", false)
}

// Verse appends a verse number token.
func (b *Builder) Verse(num string) *Builder {
	if n, err := strconv.Atoi(leadingDigits(num)); err == nil {
		b.verse = n
	}
	return b.add(checks.TextTypeVerseNumber, num, "", false)
}

// Text appends verse text.
func (b *Builder) Text(text string) *Builder {
	return b.add(checks.TextTypeVerse, text, "", false)
}

// Char appends verse text in a character style.
func (b *Builder) Char(style, text string) *Builder {
	return b.add(checks.TextTypeVerse, text, style, false)
}

// Other appends non-verse text such as a heading.
func (b *Builder) Other(text string) *Builder {
	return b.add(checks.TextTypeOther, text, "", false)
}

// Note appends the first token of a footnote.
func (b *Builder) Note(text string) *Builder {
	return b.add(checks.TextTypeNote, text, "", true)
}

// NoteText continues the current footnote.
func (b *Builder) NoteText(text string) *Builder {
	return b.add(checks.TextTypeNote, text, "", false)
}

// Caption appends picture caption text.
func (b *Builder) Caption(text string) *Builder {
	return b.add(checks.TextTypePictureCaption, text, "", false)
}

func (b *Builder) add(tt checks.TextType, text, charStyle string, noteStart bool) *Builder {
	tok := &checks.TextToken{
		Content:        text,
		Type:           tt,
		ParagraphStart: b.paraStart && tt != checks.TextTypeNote,
		NoteStart:      noteStart,
		ParaStyle:      b.para,
		CharStyle:      charStyle,
		Lang:           b.locale,
		Reference:      b.reference(),
	}
	if tok.ParagraphStart {
		b.paraStart = false
	}
	b.tokens = append(b.tokens, tok)
	return b
}

func (b *Builder) reference() string {
	switch {
	case b.chapter == 0:
		return b.book
	case b.verse == 0:
		return fmt.Sprintf("%s %d", b.book, b.chapter)
	default:
		return fmt.Sprintf("%s %d:%d", b.book, b.chapter, b.verse)
	}
}

// Tokens returns the built tokens.
func (b *Builder) Tokens() []checks.Token {
	return b.tokens
}

// Seq returns the built tokens as a sequence.
func (b *Builder) Seq() iter.Seq[checks.Token] {
	return slices.Values(b.tokens)
}

func leadingDigits(s string) string {
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}

// Source returns an in-memory parameter source.
func Source(params map[string]string) *settings.Source {
	return settings.NewSource(params)
}

// Run checks tokens with c and returns the recorded findings.
func Run(c checks.Checker, tokens []checks.Token) *checks.Recorder {
	rec := &checks.Recorder{}
	c.Check(slices.Values(tokens), rec.Record)
	return rec
}

// Texts returns the covered text of each finding.
func Texts(rec *checks.Recorder) []string {
	texts := make([]string, len(rec.Results))
	for i, r := range rec.Results {
		texts[i] = r.Text()
	}
	return texts
}

// Plain builds a single paragraph of verse text tokens.
func Plain(texts ...string) []checks.Token {
	b := NewBuilder("GEN").Para("p")
	for _, text := range texts {
		b.Text(text)
	}
	return b.Tokens()
}

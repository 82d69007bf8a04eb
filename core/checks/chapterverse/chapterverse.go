// Package chapterverse checks chapter and verse numbering: invalid,
// out-of-range, duplicate and out-of-order numbers, missing chapters and
// verses, and verses without text.
package chapterverse

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/versification"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// ID identifies findings of this check.
var ID = uuid.MustParse("d4e2a9b7-3c15-4f08-9a6e-58b1c7f02e39")

// Name is the display name of the check.
const Name = "Chapter/Verse Numbers"

// Parameters read by the check.
const (
	ParamBookID        = "Book ID"
	ParamChapter       = "Chapter Number"
	ParamVerseBridge   = "Verse Bridge"
	ParamLetterA       = "Sub-verse Letter A"
	ParamLetterB       = "Sub-verse Letter B"
	ParamDigitZero     = "Script Digit Zero"
	ParamVersification = "Versification"
)

// Checker validates chapter and verse numbers.
type Checker struct {
	src checks.ParameterSource
}

var _ checks.Checker = (*Checker)(nil)

// New creates a chapter/verse checker.
func New(src checks.ParameterSource) *Checker {
	return &Checker{src: src}
}

func (c *Checker) ID() uuid.UUID { return ID }

func (c *Checker) Name() string { return Name }

// anchor is a token a finding can be attached to.
type anchor struct {
	tok   checks.Token
	index int
}

func (a anchor) whole() checks.TokenSubstring {
	return checks.NewTokenSubstring(a.tok, a.index, 0, len(a.tok.Text()))
}

func (a anchor) after() checks.TokenSubstring {
	return checks.NewTokenSubstring(a.tok, a.index, len(a.tok.Text()), 0)
}

func (a anchor) start() checks.TokenSubstring {
	return checks.NewTokenSubstring(a.tok, a.index, 0, 0)
}

type verseEntry struct {
	anchor
	implicit  bool
	textCount int
	rng       VerseRange
}

func (v *verseEntry) label() string {
	if v.implicit {
		return "1"
	}
	return strings.TrimSpace(v.tok.Text())
}

type chapterEntry struct {
	anchor
	number   int
	implicit bool
	valid    bool
	verses   []*verseEntry
}

// point positions missing-chapter and missing-verse findings after the
// chapter number, or at the start of the first token of an implicit
// chapter.
func (ch *chapterEntry) point() checks.TokenSubstring {
	if ch.implicit {
		return ch.start()
	}
	return ch.after()
}

// Check reports numbering problems for one book.
func (c *Checker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	chapters, firstRef := buildTree(tokens)
	if len(chapters) == 0 {
		return
	}

	book := c.src.ParameterValue(ParamBookID)
	if book == "" {
		if ref, err := versification.ParseScrRef(firstRef); err == nil {
			book = ref.Book
		}
	}
	v, err := versification.New(versification.System(c.src.ParameterValue(ParamVersification)))
	if err != nil {
		logging.ConfigError(ParamVersification, err)
		v = versification.Default()
	}
	if _, ok := v.Book(book); !ok {
		logging.Warn("chapter/verse check skipped: unknown book", "book", book)
		return
	}

	filter := 0
	if s := strings.TrimSpace(c.src.ParameterValue(ParamChapter)); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter = n
		} else {
			logging.ConfigError(ParamChapter, err, "value", s)
		}
	}

	val := &validator{
		src:    c.src,
		record: record,
		vers:   v,
		book:   book,
		filter: filter,
		zero:   digitZero(c.src.ParameterValue(ParamDigitZero)),
		bridges: NewBridgeParser(
			checks.ParamOrDefault(c.src, ParamVerseBridge, "-"),
			checks.ParamOrDefault(c.src, ParamLetterA, "a"),
			checks.ParamOrDefault(c.src, ParamLetterB, "b"),
		),
	}
	val.chapters(chapters)
	for _, ch := range chapters {
		if ch.valid && (filter == 0 || ch.number == filter) {
			val.verses(ch)
		}
	}
}

// buildTree groups verse numbers under chapters and counts verse text.
// Text or verse numbers before the first chapter number create an implicit
// chapter 1 (and verse 1 for text).
func buildTree(tokens iter.Seq[checks.Token]) (chapters []*chapterEntry, firstRef string) {
	var cur *chapterEntry
	var verse *verseEntry
	implicitChapter := func(a anchor) {
		cur = &chapterEntry{anchor: a, number: 1, implicit: true}
		chapters = append(chapters, cur)
	}

	for i, tok := range checks.Indexed(tokens) {
		if i == 0 {
			firstRef = tok.ScrRefString()
		}
		a := anchor{tok: tok, index: i}
		switch tok.TextType() {
		case checks.TextTypeChapterNumber:
			cur = &chapterEntry{anchor: a, number: -1}
			chapters = append(chapters, cur)
			verse = nil
		case checks.TextTypeVerseNumber:
			if cur == nil {
				implicitChapter(a)
			}
			verse = &verseEntry{anchor: a}
			cur.verses = append(cur.verses, verse)
		case checks.TextTypeVerse:
			if cur == nil {
				implicitChapter(a)
				verse = &verseEntry{anchor: a, implicit: true}
				cur.verses = append(cur.verses, verse)
			}
			if verse == nil {
				continue
			}
			if strings.TrimSpace(tok.Text()) != "" {
				verse.textCount++
			}
		}
	}
	return chapters, firstRef
}

// digitZero returns the zero digit of the script, if configured.
func digitZero(value string) rune {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(value)
	if !unicode.IsDigit(r) {
		return 0
	}
	return r
}

// asciiDigits maps script digits to ASCII so numbers parse uniformly.
func asciiDigits(text string, zero rune) string {
	if zero == 0 || zero == '0' {
		return text
	}
	return strings.Map(func(r rune) rune {
		if r >= zero && r <= zero+9 {
			return '0' + (r - zero)
		}
		return r
	}, text)
}

// parseChapter returns the chapter number or -1.
func parseChapter(text string, zero rune) int {
	text = strings.TrimSpace(asciiDigits(text, zero))
	if text == "" {
		return -1
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return -1
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return -1
	}
	return n
}

package versification

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// ScrRef is a book, chapter and verse reference. Chapter and Verse are 0
// when absent.
type ScrRef struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`
}

// String formats the reference as "GEN 3:16".
func (r ScrRef) String() string {
	switch {
	case r.Chapter == 0:
		return r.Book
	case r.Verse == 0:
		return r.Book + " " + strconv.Itoa(r.Chapter)
	default:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	}
}

// IsZero reports whether the reference is empty.
func (r ScrRef) IsZero() bool { return r.Book == "" }

// scrRefGrammar accepts "GEN 3:16", "GEN 3", "Gen.3.16" and "1 John 2:1"
// style references.
//
//nolint:govet // participle grammar tags are not standard struct tags
type scrRefGrammar struct {
	Prefix  string         `@Int?`
	Book    []string       `@Book+`
	Chapter *scrRefChapter `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type scrRefChapter struct {
	Sep     string `"."?`
	Chapter int    `@Int`
	Verse   *int   `( (":" | ".") @Int )?`
}

// Book names may start with a digit ("1SA", "1John") and must contain a
// letter, so chapter numbers never lex as books.
var scrRefLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `[0-9]?[A-Za-z][A-Za-z0-9]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var scrRefParser = participle.MustBuild[scrRefGrammar](
	participle.Lexer(scrRefLexer),
	participle.Elide("Whitespace"),
)

// ParseScrRef parses a reference. Known books are normalized to their
// USFM code; unknown book names are kept upper-cased.
func ParseScrRef(s string) (ScrRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ScrRef{}, errors.NewParse("reference", s, "empty reference")
	}
	parsed, err := scrRefParser.ParseString("", s)
	if err != nil {
		return ScrRef{}, errors.NewParseWrap("reference", s, err)
	}

	name := parsed.Prefix + strings.Join(parsed.Book, "")
	ref := ScrRef{Book: strings.ToUpper(name)}
	if b, ok := Default().Book(name); ok {
		ref.Book = b.ID
	}
	if parsed.Chapter != nil {
		ref.Chapter = parsed.Chapter.Chapter
		if parsed.Chapter.Verse != nil {
			ref.Verse = *parsed.Chapter.Verse
		}
	}
	return ref, nil
}

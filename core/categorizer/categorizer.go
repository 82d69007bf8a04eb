// Package categorizer provides the default Unicode character categorizer
// used when the host application does not supply a writing-system specific
// one.
package categorizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
)

// Options configures a Categorizer.
type Options struct {
	// Locale selects locale-specific case mapping (BCP 47 tag).
	Locale string

	// WordForming lists extra characters treated as word forming,
	// e.g. an apostrophe or hyphen used inside words.
	WordForming string

	// Punctuation lists characters always treated as punctuation.
	Punctuation string

	// DiacriticsPrecedeBase marks writing systems where combining marks are
	// typed before their base character.
	DiacriticsPrecedeBase bool
}

// Categorizer classifies runes by Unicode general category, adjusted by
// the configured word-forming and punctuation overrides.
type Categorizer struct {
	wordForming map[rune]bool
	punctuation map[rune]bool
	lower       cases.Caser
	follow      bool
}

var _ checks.CharacterCategorizer = (*Categorizer)(nil)

// New creates a Categorizer for opts.
func New(opts Options) *Categorizer {
	tag := language.Und
	if opts.Locale != "" {
		if t, err := language.Parse(opts.Locale); err == nil {
			tag = t
		}
	}
	c := &Categorizer{
		wordForming: runeSet(opts.WordForming),
		punctuation: runeSet(opts.Punctuation),
		lower:       cases.Lower(tag),
		follow:      !opts.DiacriticsPrecedeBase,
	}
	return c
}

// FromParameters builds a Categorizer from the WordFormingCharacters,
// PunctuationCharacters, DiacriticsFollowBase and Locale parameters of
// values.
func FromParameters(values map[string]string) *Categorizer {
	return New(Options{
		Locale:                values["Locale"],
		WordForming:           values["WordFormingCharacters"],
		Punctuation:           values["PunctuationCharacters"],
		DiacriticsPrecedeBase: strings.EqualFold(values["DiacriticsFollowBase"], "false"),
	})
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range s {
		if !unicode.IsSpace(r) {
			set[r] = true
		}
	}
	return set
}

// IsWordFormingCharacter reports whether r is part of words.
func (c *Categorizer) IsWordFormingCharacter(r rune) bool {
	if c.punctuation[r] {
		return false
	}
	if c.wordForming[r] {
		return true
	}
	return unicode.IsLetter(r) || unicode.IsMark(r)
}

// IsDiacritic reports whether r is a combining mark.
func (c *Categorizer) IsDiacritic(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc)
}

// IsUpper reports whether r is an upper-case letter.
func (c *Categorizer) IsUpper(r rune) bool { return unicode.IsUpper(r) }

// IsLower reports whether r is a lower-case letter.
func (c *Categorizer) IsLower(r rune) bool { return unicode.IsLower(r) }

// IsTitle reports whether r is a title-case letter.
func (c *Categorizer) IsTitle(r rune) bool { return unicode.IsTitle(r) }

// IsPunctuation reports whether r is punctuation (or a symbol) that does
// not form words.
func (c *Categorizer) IsPunctuation(r rune) bool {
	if c.punctuation[r] {
		return true
	}
	if c.wordForming[r] {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// ToLower lower-cases s using the locale's rules.
func (c *Categorizer) ToLower(s string) string {
	return c.lower.String(s)
}

// DiacriticsFollowBaseCharacters reports the order of combining marks.
func (c *Categorizer) DiacriticsFollowBaseCharacters() bool { return c.follow }

// isWordChar is a word-forming character or a digit.
func (c *Categorizer) isWordChar(r rune) bool {
	return c.IsWordFormingCharacter(r) || unicode.IsDigit(r)
}

// WordAndPuncts splits text into words and the punctuation directly after
// each word. Leading punctuation produces an entry with an empty Word.
func (c *Categorizer) WordAndPuncts(text string) []checks.WordAndPunct {
	var result []checks.WordAndPunct
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !c.isWordChar(r) {
				break
			}
			i += size
		}
		wordEnd := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) || c.isWordChar(r) {
				break
			}
			i += size
		}
		result = append(result, checks.WordAndPunct{
			Word:   text[start:wordEnd],
			Punct:  text[wordEnd:i],
			Offset: start,
		})
	}
	return result
}

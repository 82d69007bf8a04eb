package chapterverse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParseStatus classifies a verse number token.
type ParseStatus int

const (
	// Valid verse numbers parsed completely.
	Valid ParseStatus = iota
	// InvalidFormat verse numbers parsed only in part; the recovered range
	// is still used.
	InvalidFormat
	// Invalid verse numbers yield no range.
	Invalid
)

// Part is a sub-verse part.
type Part int

const (
	NoPart Part = iota
	PartA
	PartB
)

// VerseRange is a parsed verse number or bridge such as "5", "5a" or
// "5-7".
type VerseRange struct {
	Start     int
	End       int
	StartPart Part
	EndPart   Part
	Status    ParseStatus

	// SpaceInNumber and SpaceInBridge record embedded whitespace in an
	// otherwise valid token.
	SpaceInNumber bool
	SpaceInBridge bool
}

// IsBridge reports whether the range covers more than one verse number.
func (r VerseRange) IsBridge() bool {
	return r.Start != r.End || r.StartPart != r.EndPart
}

//nolint:govet // participle grammar tags are not standard struct tags
type verseBridge struct {
	Start verseNum   `@@`
	End   *bridgeEnd `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type bridgeEnd struct {
	Sep   string   `@Bridge`
	Verse verseNum `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type verseNum struct {
	Number int    `@Int`
	Part   string `@Part?`
}

// BridgeParser parses verse numbers with the configured bridge separator
// and sub-verse letters.
type BridgeParser struct {
	parser  *participle.Parser[verseBridge]
	bridge  string
	letterA string
	letterB string
}

// NewBridgeParser builds a parser for bridge (e.g. "-") and the sub-verse
// letters a and b.
func NewBridgeParser(bridge, letterA, letterB string) *BridgeParser {
	def := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Bridge", Pattern: regexp.QuoteMeta(bridge)},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Part", Pattern: regexp.QuoteMeta(letterA) + "|" + regexp.QuoteMeta(letterB)},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `.`},
	})
	return &BridgeParser{
		parser: participle.MustBuild[verseBridge](
			participle.Lexer(def),
			participle.Elide("Whitespace"),
		),
		bridge:  bridge,
		letterA: letterA,
		letterB: letterB,
	}
}

func (p *BridgeParser) part(s string) Part {
	switch s {
	case "":
		return NoPart
	case p.letterA:
		return PartA
	}
	return PartB
}

// Parse parses a verse number token's text (with ASCII digits).
func (p *BridgeParser) Parse(text string) VerseRange {
	text = strings.TrimSpace(text)
	if text == "" {
		return VerseRange{Status: Invalid}
	}

	status := Valid
	parsed, err := p.parser.ParseString("", text)
	if err != nil {
		parsed, err = p.parser.ParseString("", text, participle.AllowTrailing(true))
		if err != nil {
			return VerseRange{Status: Invalid}
		}
		status = InvalidFormat
	}

	r := VerseRange{
		Start:     parsed.Start.Number,
		End:       parsed.Start.Number,
		StartPart: p.part(parsed.Start.Part),
		EndPart:   p.part(parsed.Start.Part),
		Status:    status,
	}
	if parsed.End != nil {
		r.End = parsed.End.Verse.Number
		r.EndPart = p.part(parsed.End.Verse.Part)
	}

	switch {
	case r.Start < 1 || r.End < 1:
		return VerseRange{Status: Invalid}
	case r.Start > r.End:
		return VerseRange{Status: Invalid}
	case parsed.End != nil && r.Start == r.End && !(r.StartPart == PartA && r.EndPart == PartB):
		return VerseRange{Status: Invalid}
	}

	if status == Valid && strings.IndexFunc(text, unicode.IsSpace) >= 0 {
		if parsed.End != nil && spaceAround(text, p.bridge) {
			r.SpaceInBridge = true
		} else {
			r.SpaceInNumber = true
		}
	}
	return r
}

// spaceAround reports whether whitespace touches the bridge separator.
func spaceAround(text, bridge string) bool {
	at := strings.Index(text, bridge)
	if at < 0 {
		return false
	}
	before := strings.TrimRightFunc(text[:at], unicode.IsSpace)
	after := strings.TrimLeftFunc(text[at+len(bridge):], unicode.IsSpace)
	return len(before) != at || len(after) != len(text)-at-len(bridge)
}

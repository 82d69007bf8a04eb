package matchedpairs

import (
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/xml"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// Pair is one configured open/close punctuation pair.
type Pair struct {
	Open  string
	Close string

	// PermitParaSpanning lets an opened pair stay open across paragraph
	// breaks.
	PermitParaSpanning bool
}

// DefaultPairs are used when MatchedPairs is not set.
var DefaultPairs = []Pair{
	{Open: "(", Close: ")"},
	{Open: "[", Close: "]"},
	{Open: "{", Close: "}"},
}

// ParsePairs reads a MatchedPairs XML value:
//
//	<MatchedPairs><pair open="(" close=")" permitParaSpanning="false"/></MatchedPairs>
func ParsePairs(value string) ([]Pair, error) {
	doc, err := xml.ParseParameter(ParamMatchedPairs, value)
	if err != nil {
		return nil, err
	}
	nodes, err := doc.XPath("//pair")
	if err != nil {
		return nil, errors.NewParseWrap("XML", ParamMatchedPairs, err)
	}
	pairs := make([]Pair, 0, len(nodes))
	for _, n := range nodes {
		p := Pair{
			Open:               strings.TrimSpace(n.Attr("open")),
			Close:              strings.TrimSpace(n.Attr("close")),
			PermitParaSpanning: n.AttrBool("permitParaSpanning"),
		}
		if utf8.RuneCountInString(p.Open) != 1 || utf8.RuneCountInString(p.Close) != 1 {
			return nil, errors.NewParse("XML", ParamMatchedPairs,
				"pair "+p.Open+p.Close+" must be two single characters")
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// pairsFromSource returns the configured pairs, or DefaultPairs when the
// parameter is missing or malformed.
func pairsFromSource(src checks.ParameterSource) []Pair {
	value := src.ParameterValue(ParamMatchedPairs)
	if strings.TrimSpace(value) == "" {
		return DefaultPairs
	}
	pairs, err := ParsePairs(value)
	if err != nil {
		logging.ConfigError(ParamMatchedPairs, err)
		return DefaultPairs
	}
	return pairs
}

// pairTable indexes pairs by character.
type pairTable struct {
	openers map[string]int
	closers map[string]int
	pairs   []Pair
}

func newPairTable(pairs []Pair) pairTable {
	t := pairTable{
		openers: make(map[string]int, len(pairs)),
		closers: make(map[string]int, len(pairs)),
		pairs:   pairs,
	}
	for i, p := range pairs {
		t.openers[p.Open] = i
		t.closers[p.Close] = i
	}
	return t
}

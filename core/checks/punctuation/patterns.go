package punctuation

import (
	"strings"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/xml"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// Level is the granularity at which gaps between words become patterns.
type Level int

const (
	// Basic reports each punctuation mark (or run of periods) with the
	// whitespace directly around it.
	Basic Level = iota
	// Intermediate reports each run of punctuation between whitespace.
	Intermediate
	// Advanced reports everything between two words as one pattern.
	Advanced
)

func (l Level) String() string {
	switch l {
	case Basic:
		return "Basic"
	case Advanced:
		return "Advanced"
	}
	return "Intermediate"
}

// ParseLevel reads a PunctCheckLevel value. The empty string is
// Intermediate.
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "basic":
		return Basic, nil
	case "", "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return Intermediate, errors.NewValidation(ParamLevel, "unknown level "+value)
}

// Pattern is one entry of the PunctuationPatterns parameter.
type Pattern struct {
	Value string
	Valid bool
}

// ParsePatterns reads a PunctuationPatterns XML value:
//
//	<PunctuationPatterns>
//	  <pattern value="._" valid="true"/>
//	  <pattern value=",," valid="false"/>
//	</PunctuationPatterns>
func ParsePatterns(value string) ([]Pattern, error) {
	doc, err := xml.ParseParameter(ParamPatterns, value)
	if err != nil {
		return nil, err
	}
	nodes, err := doc.XPath("//pattern")
	if err != nil {
		return nil, errors.NewParseWrap("XML", ParamPatterns, err)
	}
	var patterns []Pattern
	for _, n := range nodes {
		v := strings.TrimSpace(n.Attr("value"))
		if v == "" {
			continue
		}
		patterns = append(patterns, Pattern{Value: v, Valid: n.AttrBool("valid")})
	}
	return patterns, nil
}

// loadInventory fills inv from PunctuationPatterns when it is set, and
// otherwise leaves the ValidPunctuation and InvalidPunctuation lists.
func loadInventory(src checks.ParameterSource, inv *checks.Inventory) {
	value := src.ParameterValue(ParamPatterns)
	if strings.TrimSpace(value) == "" {
		return
	}
	patterns, err := ParsePatterns(value)
	if err != nil {
		logging.ConfigError(ParamPatterns, err)
		return
	}
	var valid, invalid []string
	for _, p := range patterns {
		if p.Valid {
			valid = append(valid, p.Value)
		} else {
			invalid = append(invalid, p.Value)
		}
	}
	inv.SetValidItems(strings.Join(valid, " "))
	inv.SetInvalidItems(strings.Join(invalid, " "))
}

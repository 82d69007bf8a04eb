// Package styles reads the StylesInfo parameter: which paragraph and
// character styles begin sentences, carry proper nouns, or serve as
// headings, titles, lists and tables.
package styles

import (
	"strings"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/xml"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// Parameter is the name of the StylesInfo parameter.
const Parameter = "StylesInfo"

// Kind distinguishes paragraph styles from character styles.
type Kind int

const (
	Paragraph Kind = iota
	Character
)

func (k Kind) String() string {
	if k == Character {
		return "character"
	}
	return "paragraph"
}

// Reason is why a style is listed, taken from its group element name.
type Reason string

const (
	SentenceInitial Reason = "SentenceInitial"
	ProperNoun      Reason = "ProperNouns"
	Table           Reason = "Table"
	List            Reason = "List"
	Special         Reason = "Special"
	Heading         Reason = "Heading"
	Title           Reason = "Title"
)

// Info describes one listed style.
type Info struct {
	Name    string
	Kind    Kind
	Reason  Reason
	UseType string
}

// Styles maps style names to their information.
type Styles map[string]Info

// Parse reads a StylesInfo XML value:
//
//	<StylePropsInfo>
//	  <SentenceInitial><StyleInfo StyleName="p" StyleType="paragraph" UseType="prose"/></SentenceInitial>
//	  <ProperNouns><StyleInfo StyleName="nd" StyleType="character"/></ProperNouns>
//	</StylePropsInfo>
//
// A style listed in several groups keeps its first entry.
func Parse(value string) (Styles, error) {
	doc, err := xml.ParseParameter(Parameter, value)
	if err != nil {
		return nil, err
	}
	styles := make(Styles)
	for _, group := range doc.Root().Children() {
		reason := Reason(group.Name())
		for _, n := range group.Children() {
			if n.Name() != "StyleInfo" {
				continue
			}
			name := strings.TrimSpace(n.Attr("StyleName"))
			if name == "" {
				continue
			}
			if _, dup := styles[name]; dup {
				continue
			}
			kind := Paragraph
			if strings.EqualFold(n.Attr("StyleType"), "character") {
				kind = Character
			}
			styles[name] = Info{
				Name:    name,
				Kind:    kind,
				Reason:  reason,
				UseType: strings.ToLower(n.Attr("UseType")),
			}
		}
	}
	return styles, nil
}

// FromSource reads StylesInfo from src. A missing value yields an empty
// table; a malformed one is logged and also yields an empty table.
func FromSource(src checks.ParameterSource) Styles {
	value := src.ParameterValue(Parameter)
	if strings.TrimSpace(value) == "" {
		return Styles{}
	}
	styles, err := Parse(value)
	if err != nil {
		logging.ConfigError(Parameter, err)
		return Styles{}
	}
	return styles
}

// Lookup returns the information for a style.
func (s Styles) Lookup(name string) (Info, bool) {
	info, ok := s[name]
	return info, ok
}

// Paragraph returns the information for a listed paragraph style.
func (s Styles) Paragraph(name string) (Info, bool) {
	info, ok := s[name]
	if !ok || info.Kind != Paragraph {
		return Info{}, false
	}
	return info, true
}

// Character returns the information for a listed character style.
func (s Styles) Character(name string) (Info, bool) {
	info, ok := s[name]
	if !ok || info.Kind != Character {
		return Info{}, false
	}
	return info, true
}

// CarriesQuotes reports whether paragraphs of the named style take part in
// quotation matching. The quotation check skips headings, titles, stanza
// breaks and "other" paragraphs, so an open quotation carries across them.
// Unlisted styles take part.
func (s Styles) CarriesQuotes(name string) bool {
	info, ok := s[name]
	if !ok {
		return true
	}
	switch info.UseType {
	case "other", "stanzabreak":
		return false
	}
	switch info.Reason {
	case Heading, Title:
		return false
	}
	return true
}

package styles

import (
	"testing"

	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/settings"
)

const sampleStyles = `<StylePropsInfo>
  <SentenceInitial>
    <StyleInfo StyleName="p" StyleType="paragraph" UseType="prose"/>
    <StyleInfo StyleName="q1" StyleType="paragraph" UseType="line"/>
  </SentenceInitial>
  <ProperNouns>
    <StyleInfo StyleName="nd" StyleType="character"/>
  </ProperNouns>
  <Heading>
    <StyleInfo StyleName="s1" StyleType="paragraph" UseType="prose"/>
  </Heading>
  <Title>
    <StyleInfo StyleName="mt1" StyleType="paragraph"/>
  </Title>
  <Special>
    <StyleInfo StyleName="b" StyleType="paragraph" UseType="stanzabreak"/>
  </Special>
</StylePropsInfo>`

func TestParse(t *testing.T) {
	s, err := Parse(sampleStyles)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(s) != 6 {
		t.Errorf("len = %d, want 6", len(s))
	}

	tests := []struct {
		name    string
		kind    Kind
		reason  Reason
		useType string
	}{
		{"p", Paragraph, SentenceInitial, "prose"},
		{"q1", Paragraph, SentenceInitial, "line"},
		{"nd", Character, ProperNoun, ""},
		{"s1", Paragraph, Heading, "prose"},
		{"mt1", Paragraph, Title, ""},
	}
	for _, tt := range tests {
		info, ok := s.Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.name)
			continue
		}
		if info.Kind != tt.kind || info.Reason != tt.reason || info.UseType != tt.useType {
			t.Errorf("Lookup(%q) = %+v", tt.name, info)
		}
	}

	if _, ok := s.Paragraph("nd"); ok {
		t.Error("Paragraph(nd) should not match a character style")
	}
	if _, ok := s.Character("nd"); !ok {
		t.Error("Character(nd) should match")
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("<StylePropsInfo><Heading>")
	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *errors.ParseError", err)
	}
	if pe.Path != Parameter {
		t.Errorf("Path = %q, want %q", pe.Path, Parameter)
	}
}

func TestFromSource(t *testing.T) {
	src := settings.NewSource(map[string]string{Parameter: sampleStyles})
	if s := FromSource(src); len(s) != 6 {
		t.Errorf("len = %d, want 6", len(s))
	}
	if s := FromSource(settings.NewSource(nil)); len(s) != 0 {
		t.Errorf("missing parameter gave %d styles", len(s))
	}
	bad := settings.NewSource(map[string]string{Parameter: "<oops"})
	if s := FromSource(bad); len(s) != 0 {
		t.Errorf("malformed parameter gave %d styles", len(s))
	}
}

func TestCarriesQuotes(t *testing.T) {
	s, err := Parse(sampleStyles)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		style string
		want  bool
	}{
		{"p", true},
		{"q1", true},
		{"s1", false},
		{"mt1", false},
		{"b", false},
		{"unlisted", true},
	}
	for _, tt := range tests {
		if got := s.CarriesQuotes(tt.style); got != tt.want {
			t.Errorf("CarriesQuotes(%q) = %v, want %v", tt.style, got, tt.want)
		}
	}
}

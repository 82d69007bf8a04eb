package characters

import (
	"slices"
	"testing"

	"github.com/FocuswithJustin/JuniperChecks/core/categorizer"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/checktest"
)

func TestSequences(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		precede bool
		want    []string
	}{
		{"plain", "ab", false, []string{"a", "b"}},
		{"following diacritic", "e\u0301a", false, []string{"e\u0301", "a"}},
		{"two diacritics", "a\u0323\u0301b", false, []string{"a\u0323\u0301", "b"}},
		{"leading orphan", "\u0301a", false, []string{"\u0301", "a"}},
		{"preceding diacritic", "\u0301ea", true, []string{"\u0301e", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := categorizer.New(categorizer.Options{DiacriticsPrecedeBase: tt.precede})
			var got []string
			for start, end := range Sequences(cat, tt.text) {
				got = append(got, tt.text[start:end])
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sequences(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	params := map[string]string{
		ParamValidCharacters: "a b c d e f g h i j k l m n o p q r s t u v w x y z . , \u00e9 e\u0301",
	}
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"all valid", "abc def.", nil},
		{"digits always valid", "chapter 12", nil},
		{"zero always valid", "10", nil},
		{"invalid symbol", "a$b", []string{"$"}},
		{"precomposed valid", "caf\u00e9", nil},
		{"decomposed valid", "cafe\u0301", nil},
		{"unknown diacritic", "a\u0323", []string{"a\u0323"}},
		{"capital not listed", "Abc", []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := checktest.Run(New(checktest.Source(params)), checktest.Plain(tt.text))
			if got := checktest.Texts(rec); !slices.Equal(got, tt.want) {
				t.Errorf("findings = %q, want %q", got, tt.want)
			}
			for _, r := range rec.Results {
				if r.Message != "Invalid or unknown character" {
					t.Errorf("Message = %q", r.Message)
				}
			}
		})
	}
}

func TestAlwaysValidOverride(t *testing.T) {
	src := checktest.Source(map[string]string{ParamAlwaysValid: " $"})
	rec := checktest.Run(New(src), checktest.Plain("$ 1"))
	if got := checktest.Texts(rec); !slices.Equal(got, []string{"1"}) {
		t.Errorf("findings = %q, want [1]", got)
	}
}

func TestLocaleLists(t *testing.T) {
	src := checktest.Source(map[string]string{
		ParamValidCharacters:   "a b",
		LocaleParameter("grc"): "α β",
	})
	tokens := checktest.NewBuilder("GEN").Para("p").
		Text("ab α").
		Locale("grc").Text("αβ a").
		Locale("fr").Text("ab").
		Tokens()

	rec := checktest.Run(New(src), tokens)
	want := []string{"α", "a"}
	if got := checktest.Texts(rec); !slices.Equal(got, want) {
		t.Errorf("findings = %q, want %q", got, want)
	}
}

func TestReferences(t *testing.T) {
	c := New(checktest.Source(map[string]string{ParamValidCharacters: "a"}))
	tokens := checktest.Plain("aba")
	if got := len(c.References(slices.Values(tokens), "a")); got != 2 {
		t.Errorf("References(a) = %d, want 2", got)
	}
	if got := len(c.References(slices.Values(tokens), "")); got != 3 {
		t.Errorf("References(\"\") = %d, want 3", got)
	}
}

func TestLocaleParameter(t *testing.T) {
	if got := LocaleParameter(""); got != "ValidCharacters" {
		t.Errorf("LocaleParameter(\"\") = %q", got)
	}
	if got := LocaleParameter("fr"); got != "ValidCharacters_fr" {
		t.Errorf("LocaleParameter(fr) = %q", got)
	}
}

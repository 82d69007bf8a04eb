package matchedpairs

import (
	"slices"
	"testing"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/checktest"
)

func TestMatchedPairs(t *testing.T) {
	tests := []struct {
		name   string
		tokens []checks.Token
		params map[string]string
		want   []string
	}{
		{"balanced", checktest.Plain("a (b [c] d) e"), nil, nil},
		{"unmatched open", checktest.Plain("a (b"), nil, []string{"("}},
		{"unmatched close", checktest.Plain("a b)"), nil, []string{")"}},
		{"across tokens", checktest.Plain("a (b ", "c) d"), nil, nil},
		{"valid item", checktest.Plain("1) a b)"), map[string]string{ParamValidItems: ")"}, nil},
		{
			"paragraph break",
			checktest.NewBuilder("GEN").Para("p").Text("a (b").Para("p").Text("c) d").Tokens(),
			nil, []string{"(", ")"},
		},
		{
			"paragraph spanning allowed",
			checktest.NewBuilder("GEN").Para("p").Text("a [b").Para("p").Text("c] d").Tokens(),
			map[string]string{ParamMatchedPairs: `<MatchedPairs><pair open="[" close="]" permitParaSpanning="true"/></MatchedPairs>`},
			nil,
		},
		{
			"note run is separate",
			checktest.NewBuilder("GEN").Para("p").Text("a (b ").Note("note (x").Text("c) d").Tokens(),
			nil, []string{"("},
		},
		{
			"intro outline numbering",
			checktest.NewBuilder("GEN").Para("io1").Text("1) Introduction").Tokens(),
			nil, nil,
		},
		{
			"outline closer later in paragraph",
			checktest.NewBuilder("GEN").Para("io1").Text("1) Intro b)").Tokens(),
			nil, []string{")"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := checktest.Run(New(checktest.Source(tt.params)), tt.tokens)
			if got := checktest.Texts(rec); !slices.Equal(got, tt.want) {
				t.Errorf("findings = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlappingPairs(t *testing.T) {
	rec := checktest.Run(New(checktest.Source(nil)), checktest.Plain("(a[b)c]"))
	if len(rec.Results) != 4 {
		t.Fatalf("got %d findings, want 4: %q", len(rec.Results), rec.Messages())
	}
	for _, r := range rec.Results {
		if r.Message != "Overlapping pair" {
			t.Errorf("Message = %q, want %q", r.Message, "Overlapping pair")
		}
	}
	got := checktest.Texts(rec)
	slices.Sort(got)
	if want := []string{"(", ")", "[", "]"}; !slices.Equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestUnmatchedMessage(t *testing.T) {
	rec := checktest.Run(New(checktest.Source(nil)), checktest.Plain("x {y"))
	if len(rec.Results) != 1 {
		t.Fatalf("got %d findings", len(rec.Results))
	}
	r := rec.Results[0]
	if r.Message != "Unmatched punctuation" || r.Offset != 2 || r.Key() != "{" {
		t.Errorf("finding = %q at %d key %q", r.Message, r.Offset, r.Key())
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs(`<MatchedPairs>
  <pair open="(" close=")"/>
  <pair open="«" close="»" permitParaSpanning="true"/>
</MatchedPairs>`)
	if err != nil {
		t.Fatalf("ParsePairs error: %v", err)
	}
	want := []Pair{{Open: "(", Close: ")"}, {Open: "«", Close: "»", PermitParaSpanning: true}}
	if !slices.Equal(pairs, want) {
		t.Errorf("pairs = %+v, want %+v", pairs, want)
	}

	if _, err := ParsePairs(`<MatchedPairs><pair open="((" close=")"/></MatchedPairs>`); err == nil {
		t.Error("multi-character pair should fail")
	}
}

func TestMalformedPairsFallBack(t *testing.T) {
	src := checktest.Source(map[string]string{ParamMatchedPairs: "<MatchedPairs"})
	rec := checktest.Run(New(src), checktest.Plain("a (b"))
	if got := checktest.Texts(rec); !slices.Equal(got, []string{"("}) {
		t.Errorf("findings = %q, want default pairs to apply", got)
	}
}

func TestReferences(t *testing.T) {
	c := New(checktest.Source(map[string]string{ParamValidItems: ")"}))
	tokens := checktest.Plain("a) b( c)")
	refs := c.References(slices.Values(tokens), ")")
	if len(refs) != 1 {
		t.Errorf("References()) = %d, want 1", len(refs))
	}
}

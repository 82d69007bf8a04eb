package repeatedwords

import (
	"slices"
	"testing"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/checktest"
)

func TestRepeatedWords(t *testing.T) {
	tests := []struct {
		name   string
		tokens []checks.Token
		params map[string]string
		want   []string
	}{
		{"simple", checktest.Plain("and the the man"), nil, []string{"the"}},
		{"case folded", checktest.Plain("The the man"), nil, []string{"the"}},
		{"comma between", checktest.Plain("the, the man"), nil, nil},
		{"repeatable", checktest.Plain("the the man"), map[string]string{ParamRepeatable: "the"}, nil},
		{"numbers", checktest.Plain("3 3 men"), nil, nil},
		{"across tokens", checktest.Plain("go to ", "to the house"), nil, []string{"to"}},
		{"twice", checktest.Plain("so so so"), nil, []string{"so", "so"}},
		{
			"paragraph break resets",
			checktest.NewBuilder("GEN").Para("p").Text("and the").Para("p").Text("the end").Tokens(),
			nil, nil,
		},
		{
			"verse number does not reset",
			checktest.NewBuilder("GEN").Chapter("1").Para("p").Verse("1").Text("and ").Verse("2").Text("and then").Tokens(),
			nil, []string{"and"},
		},
		{
			"chapter resets",
			checktest.NewBuilder("GEN").Chapter("1").Para("p").Verse("1").Text("the end").Chapter("2").Verse("1").Text("end of").Tokens(),
			nil, nil,
		},
		{
			"note is separate",
			checktest.NewBuilder("GEN").Para("p").Text("the ").Note("the note").Text("the end").Tokens(),
			nil, []string{"the"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := checktest.Run(New(checktest.Source(tt.params)), tt.tokens)
			if got := checktest.Texts(rec); !slices.Equal(got, tt.want) {
				t.Errorf("findings = %q, want %q", got, tt.want)
			}
			for _, r := range rec.Results {
				if r.Message != "Repeated word" {
					t.Errorf("Message = %q", r.Message)
				}
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	rec := checktest.Run(New(checktest.Source(nil)), checktest.Plain("and the the man"))
	if len(rec.Results) != 1 {
		t.Fatalf("got %d findings, want 1", len(rec.Results))
	}
	r := rec.Results[0]
	if r.Offset != 8 || r.Length() != 3 {
		t.Errorf("Offset, Length = %d, %d, want 8, 3", r.Offset, r.Length())
	}
	if rec.CheckIDs[0] != ID {
		t.Errorf("check ID = %v, want %v", rec.CheckIDs[0], ID)
	}
}

func TestReferences(t *testing.T) {
	c := New(checktest.Source(map[string]string{ParamRepeatable: "so"}))
	tokens := checktest.Plain("so so and the the")
	all := c.References(slices.Values(tokens), "")
	if len(all) != 2 {
		t.Fatalf("References(\"\") = %d, want 2", len(all))
	}
	the := c.References(slices.Values(tokens), "the")
	if len(the) != 1 || the[0].Text() != "the" {
		t.Errorf("References(the) = %v", the)
	}
}

func TestIdempotent(t *testing.T) {
	tokens := checktest.Plain("the the and and")
	first := checktest.Run(New(checktest.Source(nil)), tokens)
	second := checktest.Run(New(checktest.Source(nil)), tokens)
	if !slices.Equal(checktest.Texts(first), checktest.Texts(second)) {
		t.Error("runs differ")
	}
}

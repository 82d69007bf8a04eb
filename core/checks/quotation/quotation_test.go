package quotation

import (
	"slices"
	"testing"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/checktest"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/quotemarks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/styles"
)

const english = `<QuotationMarks ParagraphContinuationType="All" ParagraphContinuationMark="Opening">
  <QuotationMark Level="1"><Open>“</Open><Close>”</Close></QuotationMark>
  <QuotationMark Level="2"><Open>‘</Open><Close>’</Close></QuotationMark>
</QuotationMarks>`

const collapsing = `<QuotationMarks ParagraphContinuationType="All" CollapseAdjacentQuotes="true">
  <QuotationMark Level="1"><Open>“</Open><Close>”</Close></QuotationMark>
  <QuotationMark Level="2"><Open>‘</Open><Close>’</Close></QuotationMark>
</QuotationMarks>`

const outermost = `<QuotationMarks ParagraphContinuationType="Outermost">
  <QuotationMark Level="1"><Open>“</Open><Close>”</Close></QuotationMark>
  <QuotationMark Level="2"><Open>‘</Open><Close>’</Close></QuotationMark>
</QuotationMarks>`

const straight = `<QuotationMarks>
  <QuotationMark Level="1"><Open>"</Open><Close>"</Close></QuotationMark>
</QuotationMarks>`

const dashes = `<QuotationMarks>
  <QuotationMark Level="1"><Open>—</Open></QuotationMark>
  <QuotationMark Level="2"><Open>“</Open><Close>”</Close></QuotationMark>
</QuotationMarks>`

type finding struct {
	text, msg string
}

func run(t *testing.T, params map[string]string, tokens []checks.Token) []finding {
	t.Helper()
	rec := checktest.Run(New(checktest.Source(params)), tokens)
	var got []finding
	for _, r := range rec.Results {
		got = append(got, finding{r.Text(), r.Message})
	}
	return got
}

func with(info string) map[string]string {
	return map[string]string{quotemarks.Parameter: info}
}

func paras(texts ...string) []checks.Token {
	b := checktest.NewBuilder("GEN")
	for _, text := range texts {
		b.Para("p").Text(text)
	}
	return b.Tokens()
}

func TestQuotation(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		tokens []checks.Token
		want   []finding
	}{
		{
			"balanced",
			with(english),
			checktest.Plain("He said, “Go ‘now’ quickly.”"),
			nil,
		},
		{
			"inner level left open",
			with(english),
			checktest.Plain("“Open1 ‘Open2”"),
			[]finding{{"‘", "Unmatched opening mark: level 2"}},
		},
		{
			"closer without opener",
			with(english),
			checktest.Plain("He went” home."),
			[]finding{{"”", "Unmatched closing mark: level 1"}},
		},
		{
			"opener never closed",
			with(english),
			checktest.Plain("“He went home."),
			[]finding{{"“", "Unmatched opening mark: level 1"}},
		},
		{
			"open levels reported innermost first",
			with(english),
			checktest.Plain("“He said ‘go"),
			[]finding{{"‘", "Unmatched opening mark: level 2"}, {"“", "Unmatched opening mark: level 1"}},
		},
		{
			"opener too deep",
			with(english),
			checktest.Plain("He said ‘go’ now."),
			[]finding{{"‘", "Missing opening mark: level 1"}},
		},
		{
			"reopened level",
			with(english),
			checktest.Plain("“He said “go” now."),
			[]finding{{"“", "Unmatched opening mark: level 1"}},
		},
		{
			"marks split across tokens",
			with(english),
			checktest.Plain("He said, “Go", " now.”"),
			nil,
		},
		{
			"continued paragraph",
			with(english),
			paras("“He said,", "“and then ‘she said,", "“‘go.’”"),
			nil,
		},
		{
			"missing continuation",
			with(english),
			paras("“He said,", "and then.”"),
			[]finding{{"and", "Missing continuation mark: level 1"}},
		},
		{
			"missing continuations",
			with(english),
			paras("“He said ‘she", "went’ home.”"),
			[]finding{{"went’", "Missing continuation marks: levels 1-2"}},
		},
		{
			"continuation must lead the paragraph",
			with(english),
			paras("“He said,", "then “go.”"),
			[]finding{{"then", "Missing continuation mark: level 1"}},
		},
		{
			"outermost continuation",
			with(outermost),
			paras("“He said ‘she", "“went’ home.”"),
			nil,
		},
		{
			"quotation restarted after missing continuation",
			with(outermost),
			paras("“He said,", "Then he said “go.”"),
			[]finding{{"Then", "Missing continuation mark: level 1"}},
		},
		{
			"verse number before continuation",
			with(english),
			checktest.NewBuilder("GEN").Chapter("1").
				Para("p").Verse("1").Text("“He said,").
				Para("p").Verse("2").Text("“go.”").Tokens(),
			nil,
		},
		{
			"ambiguous marks",
			with(straight),
			checktest.Plain(`He said "go" and "stay`),
			[]finding{{`"`, "Unmatched opening mark: level 1"}},
		},
		{
			"no quotation info",
			nil,
			checktest.Plain("“unbalanced"),
			nil,
		},
		{
			"captions ignored",
			with(english),
			checktest.NewBuilder("GEN").Para("p").Text("“Go.”").Caption("“caption").Tokens(),
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.params, tt.tokens)
			if !slices.Equal(got, tt.want) {
				t.Errorf("findings = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotesAreSeparate(t *testing.T) {
	tokens := checktest.NewBuilder("GEN").Para("p").
		Text("“He said ").Note("see “note”").Text("go.”").
		Note("other” note").Tokens()
	got := run(t, with(english), tokens)
	want := []finding{{"”", "Unmatched closing mark: level 1"}}
	if !slices.Equal(got, want) {
		t.Errorf("findings = %v, want %v", got, want)
	}
}

func TestHeadingsAreSkipped(t *testing.T) {
	params := with(english)
	params[styles.Parameter] = `<StylePropsInfo>
  <Heading><StyleInfo StyleName="s1" StyleType="paragraph"/></Heading>
</StylePropsInfo>`
	tokens := checktest.NewBuilder("GEN").
		Para("p").Text("“He said,").
		Para("s1").Other("The “Heading").
		Para("p").Text("“go.”").Tokens()
	if got := run(t, params, tokens); len(got) != 0 {
		t.Errorf("findings = %v, want none", got)
	}
}

func TestCollapseAdjacent(t *testing.T) {
	tests := []struct {
		name string
		info string
		text string
		want []finding
	}{
		{"closer after closer", english, "“a ‘b’” ”", []finding{{"”", "Unmatched closing mark: level 1"}}},
		{"closer after closer collapsed", collapsing, "“a ‘b’” ”", nil},
		{"ends on opener", english, "“a ‘b", []finding{{"‘", "Unmatched opening mark: level 2"}, {"“", "Unmatched opening mark: level 1"}}},
		{"ends on opener collapsed", collapsing, "“a ‘b", nil},
		{"ends on text collapsed", collapsing, "“a ‘b’ c", []finding{{"“", "Unmatched opening mark: level 1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, with(tt.info), checktest.Plain(tt.text))
			if !slices.Equal(got, tt.want) {
				t.Errorf("findings = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoTopLevelCloser(t *testing.T) {
	tests := []struct {
		text string
		want []finding
	}{
		{"—He said “go” now", nil},
		{"—He said. —She said.", nil},
		{"—He said “go. —She said.", []finding{{"“", "Unmatched opening mark: level 2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := run(t, with(dashes), checktest.Plain(tt.text))
			if !slices.Equal(got, tt.want) {
				t.Errorf("findings = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerbose(t *testing.T) {
	params := with(english)
	params[ParamVerbose] = "Yes"
	got := run(t, params, paras("“He said,", "“go.”"))
	want := []finding{
		{"“", "Level 1 quote opened"},
		{"“", "Level 1 quote continued"},
		{"”", "Level 1 quote closed"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("findings = %v, want %v", got, want)
	}
}

func TestIdempotent(t *testing.T) {
	c := New(checktest.Source(with(english)))
	tokens := checktest.Plain("“a ‘b”", "’ c")
	first := checktest.Run(c, tokens).Messages()
	second := checktest.Run(c, tokens).Messages()
	if !slices.Equal(first, second) {
		t.Errorf("runs differ: %q vs %q", first, second)
	}
}

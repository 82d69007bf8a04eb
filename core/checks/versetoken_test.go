package checks

import (
	"slices"
	"testing"
)

func TestVerseTextTokenReset(t *testing.T) {
	tests := []struct {
		name    string
		tok     *TextToken
		inherit bool
		want    bool
	}{
		{"plain text", &TextToken{Content: "a", Type: TextTypeVerse}, false, false},
		{"inherits", &TextToken{Content: "a", Type: TextTypeVerse}, true, true},
		{"own paragraph start", &TextToken{Content: "a", Type: TextTypeVerse, ParagraphStart: true}, false, true},
		{"number does not inherit", &TextToken{Content: "2", Type: TextTypeVerseNumber}, true, false},
		{"note inherits", &TextToken{Content: "n", Type: TextTypeNote}, true, true},
	}
	var v VerseTextToken
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.Reset(tt.tok, tt.inherit)
			if got := v.IsParagraphStart(); got != tt.want {
				t.Errorf("IsParagraphStart() = %v, want %v", got, tt.want)
			}
			if v.Text() != tt.tok.Content || v.Unwrap() != Token(tt.tok) {
				t.Errorf("Reset did not rewrap: %q", v.Text())
			}
		})
	}
}

func TestVerseTextTokenOwnsCopy(t *testing.T) {
	tok := &TextToken{Content: "before", Type: TextTypeVerse}
	v := NewVerseTextToken(tok, false)
	tok.Content = "after"
	if v.Text() != "before" {
		t.Errorf("Text() = %q, want the value at wrap time", v.Text())
	}
	if Unwrap(&v) != Token(tok) {
		t.Error("Unwrap should return the wrapped token")
	}
}

func TestParagraphStarts(t *testing.T) {
	tests := []struct {
		name   string
		tokens []Token
		want   []bool
	}{
		{
			"verse at paragraph start",
			[]Token{
				&TextToken{Content: "1", Type: TextTypeVerseNumber, ParagraphStart: true},
				&TextToken{Content: "In the", Type: TextTypeVerse},
				&TextToken{Content: " beginning", Type: TextTypeVerse},
			},
			[]bool{true, true, false},
		},
		{
			"chapter and verse pair",
			[]Token{
				&TextToken{Content: "1", Type: TextTypeChapterNumber, ParagraphStart: true},
				&TextToken{Content: "1", Type: TextTypeVerseNumber},
				&TextToken{Content: "In", Type: TextTypeVerse},
			},
			[]bool{true, false, true},
		},
		{
			"verse inside paragraph",
			[]Token{
				&TextToken{Content: "Text", Type: TextTypeVerse, ParagraphStart: true},
				&TextToken{Content: "2", Type: TextTypeVerseNumber},
				&TextToken{Content: "more", Type: TextTypeVerse},
			},
			[]bool{true, false, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []bool
			for tok := range ParagraphStarts(slices.Values(tt.tokens)) {
				got = append(got, tok.IsParagraphStart())
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("paragraph starts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndexed(t *testing.T) {
	tokens := []Token{verse("a"), verse("b"), verse("c")}
	var got []int
	for i, tok := range Indexed(slices.Values(tokens)) {
		if tok != tokens[i] {
			t.Errorf("token %d out of order", i)
		}
		got = append(got, i)
		if i == 1 {
			break
		}
	}
	if !slices.Equal(got, []int{0, 1}) {
		t.Errorf("indices = %v, want [0 1]", got)
	}
}

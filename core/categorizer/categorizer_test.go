package categorizer

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
)

func TestWordAndPuncts(t *testing.T) {
	c := New(Options{})
	tests := []struct {
		text string
		want []checks.WordAndPunct
	}{
		{"", nil},
		{"In the beginning", []checks.WordAndPunct{
			{Word: "In", Offset: 0},
			{Word: "the", Offset: 3},
			{Word: "beginning", Offset: 7},
		}},
		{"Hello, world.", []checks.WordAndPunct{
			{Word: "Hello", Punct: ",", Offset: 0},
			{Word: "world", Punct: ".", Offset: 7},
		}},
		{"“Go!” he said", []checks.WordAndPunct{
			{Word: "", Punct: "“", Offset: 0},
			{Word: "Go", Punct: "!”", Offset: 3},
			{Word: "he", Offset: 10},
			{Word: "said", Offset: 13},
		}},
		{"3:16 says", []checks.WordAndPunct{
			{Word: "3", Punct: ":", Offset: 0},
			{Word: "16", Offset: 2},
			{Word: "says", Offset: 5},
		}},
	}

	for _, tt := range tests {
		got := c.WordAndPuncts(tt.text)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("WordAndPuncts(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestWordFormingOverrides(t *testing.T) {
	plain := New(Options{})
	if plain.IsWordFormingCharacter('\'') {
		t.Error("apostrophe should not be word forming by default")
	}
	if !plain.IsPunctuation('\'') {
		t.Error("apostrophe should be punctuation by default")
	}

	c := New(Options{WordForming: "' -", Punctuation: "·"})
	if !c.IsWordFormingCharacter('\'') {
		t.Error("apostrophe should be word forming when configured")
	}
	if c.IsPunctuation('\'') {
		t.Error("configured word-forming apostrophe should not be punctuation")
	}
	if !c.IsPunctuation('·') {
		t.Error("configured punctuation should be punctuation")
	}

	got := c.WordAndPuncts("don't stop")
	if len(got) != 2 || got[0].Word != "don't" {
		t.Errorf("WordAndPuncts with apostrophe = %+v", got)
	}
}

func TestCaseAndDiacritics(t *testing.T) {
	c := New(Options{})
	if !c.IsUpper('A') || c.IsUpper('a') {
		t.Error("IsUpper misclassifies ASCII")
	}
	if !c.IsLower('é') {
		t.Error("é should be lower case")
	}
	if !c.IsTitle('ǅ') {
		t.Error("ǅ should be title case")
	}
	if !c.IsDiacritic('́') || c.IsDiacritic('e') {
		t.Error("IsDiacritic misclassifies")
	}
	if !c.IsWordFormingCharacter('́') {
		t.Error("combining marks are word forming")
	}
	if !c.DiacriticsFollowBaseCharacters() {
		t.Error("diacritics follow base by default")
	}
	if New(Options{DiacriticsPrecedeBase: true}).DiacriticsFollowBaseCharacters() {
		t.Error("DiacriticsPrecedeBase not honored")
	}
}

func TestToLowerLocale(t *testing.T) {
	if got := New(Options{}).ToLower("THE"); got != "the" {
		t.Errorf("ToLower = %q, want the", got)
	}
	if got := New(Options{Locale: "tr"}).ToLower("İSA"); got != "isa" {
		t.Errorf("Turkish ToLower = %q, want isa", got)
	}
	if got := New(Options{Locale: "not a tag!"}).ToLower("ABC"); got != "abc" {
		t.Errorf("ToLower with bad locale = %q, want abc", got)
	}
}

func TestFromParameters(t *testing.T) {
	c := FromParameters(map[string]string{
		"WordFormingCharacters": "-",
		"DiacriticsFollowBase":  "false",
	})
	if !c.IsWordFormingCharacter('-') {
		t.Error("hyphen should be word forming")
	}
	if c.DiacriticsFollowBaseCharacters() {
		t.Error("DiacriticsFollowBase=false not honored")
	}
}

package chapterverse

import "testing"

func TestBridgeParse(t *testing.T) {
	p := NewBridgeParser("-", "a", "b")
	tests := []struct {
		text string
		want VerseRange
	}{
		{"5", VerseRange{Start: 5, End: 5}},
		{"5-7", VerseRange{Start: 5, End: 7}},
		{"5a", VerseRange{Start: 5, End: 5, StartPart: PartA, EndPart: PartA}},
		{"5b", VerseRange{Start: 5, End: 5, StartPart: PartB, EndPart: PartB}},
		{"5a-5b", VerseRange{Start: 5, End: 5, StartPart: PartA, EndPart: PartB}},
		{"5b-7a", VerseRange{Start: 5, End: 7, StartPart: PartB, EndPart: PartA}},
		{"5 - 7", VerseRange{Start: 5, End: 7, SpaceInBridge: true}},
		{"5 a", VerseRange{Start: 5, End: 5, StartPart: PartA, EndPart: PartA, SpaceInNumber: true}},
		{"5x", VerseRange{Start: 5, End: 5, Status: InvalidFormat}},
		{"5-7?", VerseRange{Start: 5, End: 7, Status: InvalidFormat}},
		{"x", VerseRange{Status: Invalid}},
		{"", VerseRange{Status: Invalid}},
		{"0", VerseRange{Status: Invalid}},
		{"7-5", VerseRange{Status: Invalid}},
		{"5-5", VerseRange{Status: Invalid}},
		{"5b-5a", VerseRange{Status: Invalid}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := p.Parse(tt.text); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBridgeParseConfigured(t *testing.T) {
	p := NewBridgeParser("~", "x", "y")
	if got := p.Parse("3x~4y"); got != (VerseRange{Start: 3, End: 4, StartPart: PartA, EndPart: PartB}) {
		t.Errorf("Parse(3x~4y) = %+v", got)
	}
	if got := p.Parse("3-4"); got.Status != InvalidFormat || got.Start != 3 || got.End != 3 {
		t.Errorf("Parse(3-4) = %+v, want InvalidFormat 3", got)
	}
}

func TestIsBridge(t *testing.T) {
	if (VerseRange{Start: 5, End: 5}).IsBridge() {
		t.Error("5 is not a bridge")
	}
	if !(VerseRange{Start: 5, End: 6}).IsBridge() {
		t.Error("5-6 is a bridge")
	}
	if !(VerseRange{Start: 5, End: 5, StartPart: PartA, EndPart: PartB}).IsBridge() {
		t.Error("5a-5b is a bridge")
	}
}

func TestParseChapter(t *testing.T) {
	tests := []struct {
		text string
		zero rune
		want int
	}{
		{"12", 0, 12},
		{" 3 ", 0, 3},
		{"3a", 0, -1},
		{"", 0, -1},
		{"१२", '०', 12},
		{"१२", 0, -1},
	}
	for _, tt := range tests {
		if got := parseChapter(tt.text, tt.zero); got != tt.want {
			t.Errorf("parseChapter(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

package checks

// TextType classifies the content of a token.
type TextType int

// Text type constants.
const (
	TextTypeVerse TextType = iota
	TextTypeChapterNumber
	TextTypeVerseNumber
	TextTypeNote
	TextTypeOther
	TextTypePictureCaption
)

var textTypeNames = map[TextType]string{
	TextTypeVerse:          "verse",
	TextTypeChapterNumber:  "chapter_number",
	TextTypeVerseNumber:    "verse_number",
	TextTypeNote:           "note",
	TextTypeOther:          "other",
	TextTypePictureCaption: "picture_caption",
}

// String returns the snake_case name of the text type.
func (t TextType) String() string {
	if name, ok := textTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTextType returns the TextType for a name produced by String.
func ParseTextType(name string) (TextType, bool) {
	for t, n := range textTypeNames {
		if n == name {
			return t, true
		}
	}
	return TextTypeOther, false
}

// IsNumber reports whether the type is a chapter or verse number.
func (t TextType) IsNumber() bool {
	return t == TextTypeChapterNumber || t == TextTypeVerseNumber
}

// Token is one run of text with its style and structure annotations.
// Tokens are read-only to every checker.
type Token interface {
	Text() string
	TextType() TextType
	IsParagraphStart() bool
	IsNoteStart() bool
	ParaStyleName() string
	CharStyleName() string
	Locale() string
	ScrRefString() string
}

// TextToken is the plain value implementation of Token.
type TextToken struct {
	Content        string   `json:"text"`
	Type           TextType `json:"type"`
	ParagraphStart bool     `json:"paragraph_start,omitempty"`
	NoteStart      bool     `json:"note_start,omitempty"`
	ParaStyle      string   `json:"para_style,omitempty"`
	CharStyle      string   `json:"char_style,omitempty"`
	Lang           string   `json:"locale,omitempty"`
	Reference      string   `json:"reference,omitempty"`
}

func (t *TextToken) Text() string           { return t.Content }
func (t *TextToken) TextType() TextType     { return t.Type }
func (t *TextToken) IsParagraphStart() bool { return t.ParagraphStart }
func (t *TextToken) IsNoteStart() bool      { return t.NoteStart }
func (t *TextToken) ParaStyleName() string  { return t.ParaStyle }
func (t *TextToken) CharStyleName() string  { return t.CharStyle }
func (t *TextToken) Locale() string         { return t.Lang }
func (t *TextToken) ScrRefString() string   { return t.Reference }

// Snapshot copies any Token into a TextToken value.
func Snapshot(tok Token) TextToken {
	return TextToken{
		Content:        tok.Text(),
		Type:           tok.TextType(),
		ParagraphStart: tok.IsParagraphStart(),
		NoteStart:      tok.IsNoteStart(),
		ParaStyle:      tok.ParaStyleName(),
		CharStyle:      tok.CharStyleName(),
		Lang:           tok.Locale(),
		Reference:      tok.ScrRefString(),
	}
}

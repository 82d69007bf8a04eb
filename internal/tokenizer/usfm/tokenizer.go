// Package usfm reads USFM files into the token streams consumed by the
// checks: one stream per book, with paragraph and character styles, notes,
// figure captions, chapter and verse numbers and scripture references.
package usfm

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/versification"
)

// USFM parsing helpers
var (
	markerRegex    = regexp.MustCompile(`\\(\+?[a-zA-Z0-9]+)(\*?)`)
	paragraphRegex = regexp.MustCompile(`^(p|m|po|pr|cls|pmo|pm|pmc|pmr|pi\d?|mi|nb|pc|ph\d?|b|q\d?|qr|qc|qm\d?|qd|lh|li\d?|lf|lim\d?|tr|mt\d?|mte\d?|ms\d?|mr|s\d?|sr|r|d|sp|sd\d?|cl|cd|qa|i[a-z]+\d?)$`)
	headingRegex   = regexp.MustCompile(`^(mt\d?|mte\d?|ms\d?|mr|s\d?|sr|r|d|sp|sd\d?|cl|cd|qa|i[a-z]+\d?)$`)
	lineMarkers    = map[string]bool{
		"id": true, "ide": true, "usfm": true, "sts": true, "rem": true,
		"h": true, "h1": true, "h2": true, "h3": true,
		"toc1": true, "toc2": true, "toc3": true, "toca1": true, "toca2": true, "toca3": true,
	}
	noteMarkers   = map[string]bool{"f": true, "fe": true, "ef": true, "x": true, "ex": true}
	hiddenInNotes = map[string]bool{"fr": true, "xo": true, "fv": true}
)

// Book is the token stream of one book.
type Book struct {
	ID     string
	Tokens []checks.Token
}

// Detect reports whether data looks like USFM.
func Detect(data []byte) bool {
	content := string(data)
	return strings.Contains(content, "\\id ") || strings.Contains(content, "\\c ") ||
		strings.Contains(content, "\\v ") || strings.Contains(content, "\\p")
}

// ParseFile reads a USFM file.
func ParseFile(path string) ([]Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	books, err := Parse(data)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = filepath.Base(path)
		}
		return nil, err
	}
	return books, nil
}

// Parse splits USFM text into books of tokens. Text before the first \id
// marker is an error.
func Parse(data []byte) ([]Book, error) {
	p := &parser{}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if err := p.run(text); err != nil {
		return nil, err
	}
	p.endParagraph()
	return p.books, nil
}

// noteState tracks the footnote or cross reference being read.
type noteState struct {
	started bool // a token of the note was emitted
	caller  bool // the caller field is still to be skipped
	hidden  bool // inside a reference field such as \fr
	style   string
}

type parser struct {
	books []Book
	book  *Book

	chapter   string
	verse     string
	para      string
	paraType  checks.TextType
	paraStart bool
	charStack []string
	note      *noteState
	fig       *strings.Builder
}

func (p *parser) run(text string) error {
	pos := 0
	for pos < len(text) {
		loc := markerRegex.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			if err := p.text(text[pos:]); err != nil {
				return err
			}
			break
		}
		if err := p.text(text[pos : pos+loc[0]]); err != nil {
			return err
		}
		marker := text[pos+loc[2] : pos+loc[3]]
		closing := loc[5] > loc[4]
		pos += loc[1]
		if !closing && pos < len(text) && (text[pos] == ' ' || text[pos] == '\n' || text[pos] == '\t') {
			pos++
		}

		rest, err := p.marker(strings.TrimPrefix(marker, "+"), closing, text[pos:])
		if err != nil {
			return err
		}
		pos = len(text) - len(rest)
	}
	return nil
}

// marker handles one marker and returns the unconsumed text after it.
func (p *parser) marker(name string, closing bool, rest string) (string, error) {
	if name == "id" {
		line, after := cutLine(rest)
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "\\") {
			return after, errors.NewParse("USFM", "", "\\id without a book code")
		}
		p.startBook(strings.ToUpper(fields[0]))
		return after, nil
	}
	if p.book == nil {
		return rest, errors.NewParse("USFM", "", "\\"+name+" before \\id")
	}

	switch {
	case lineMarkers[name]:
		_, after := cutLine(rest)
		return after, nil

	case name == "c":
		line, after := cutNumber(rest)
		p.endParagraph()
		p.chapter = line
		p.verse = ""
		p.emit(&checks.TextToken{
			Content:        line,
			Type:           checks.TextTypeChapterNumber,
			ParagraphStart: true,
			ParaStyle:      "c",
		})
		p.paraType = checks.TextTypeVerse
		return after, nil

	case name == "v":
		num, after := cutNumber(rest)
		p.verse = num
		p.emit(&checks.TextToken{
			Content:        num,
			Type:           checks.TextTypeVerseNumber,
			ParagraphStart: p.takeParaStart(),
			ParaStyle:      p.para,
		})
		return after, nil

	case name == "fig":
		if closing {
			p.endFigure()
		} else {
			p.fig = &strings.Builder{}
		}
		return rest, nil

	case noteMarkers[name]:
		if closing {
			p.note = nil
		} else {
			p.note = &noteState{caller: true}
		}
		return rest, nil

	case paragraphRegex.MatchString(name) && !closing:
		p.endParagraph()
		p.para = name
		p.paraStart = true
		p.paraType = checks.TextTypeVerse
		if headingRegex.MatchString(name) || p.chapter == "" {
			p.paraType = checks.TextTypeOther
		}
		return rest, nil

	case p.note != nil:
		p.note.hidden = !closing && hiddenInNotes[name]
		p.note.style = ""
		if !closing && name != "ft" && name != "xt" && !p.note.hidden {
			p.note.style = name
		}
		return rest, nil

	case closing:
		if n := len(p.charStack); n > 0 {
			p.charStack = p.charStack[:n-1]
		}
		return rest, nil
	}

	// Any other marker opens a character style.
	p.charStack = append(p.charStack, name)
	return rest, nil
}

func (p *parser) startBook(id string) {
	p.endParagraph()
	if b, ok := versification.Default().Book(id); ok {
		id = b.ID
	}
	p.books = append(p.books, Book{ID: id})
	p.book = &p.books[len(p.books)-1]
	p.chapter, p.verse, p.para = "", "", ""
	p.paraType = checks.TextTypeOther
	p.paraStart = false
	p.charStack = nil
	p.note = nil
	p.fig = nil
}

func (p *parser) endParagraph() {
	p.charStack = nil
	p.note = nil
	p.endFigure()
	p.trimLast()
}

func (p *parser) endFigure() {
	if p.fig == nil {
		return
	}
	caption, _, _ := strings.Cut(p.fig.String(), "|")
	p.fig = nil
	if caption = strings.TrimSpace(caption); caption != "" {
		p.emit(&checks.TextToken{
			Content:   caption,
			Type:      checks.TextTypePictureCaption,
			ParaStyle: p.para,
		})
	}
}

func (p *parser) takeParaStart() bool {
	start := p.paraStart
	p.paraStart = false
	return start
}

// text emits the text between two markers.
func (p *parser) text(s string) error {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if p.book == nil {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return errors.NewParse("USFM", "", "text before \\id")
	}
	if p.fig != nil {
		p.fig.WriteString(s)
		return nil
	}

	if p.note != nil {
		if p.note.caller {
			_, s, _ = strings.Cut(strings.TrimLeft(s, " "), " ")
			p.note.caller = false
		}
		if p.note.hidden || strings.TrimSpace(s) == "" {
			return nil
		}
		p.emit(&checks.TextToken{
			Content:   s,
			Type:      checks.TextTypeNote,
			NoteStart: !p.note.started,
			ParaStyle: p.para,
			CharStyle: p.note.style,
		})
		p.note.started = true
		return nil
	}

	if strings.TrimSpace(s) == "" && p.paraStart {
		return nil
	}
	charStyle := ""
	if n := len(p.charStack); n > 0 {
		charStyle = p.charStack[n-1]
		// USFM 3 attributes: \w grace|lemma="grace"\w*
		if i := strings.IndexByte(s, '|'); i >= 0 {
			s = s[:i]
		}
	}
	p.emit(&checks.TextToken{
		Content:        s,
		Type:           p.paraType,
		ParagraphStart: p.takeParaStart(),
		ParaStyle:      p.para,
		CharStyle:      charStyle,
	})
	return nil
}

func (p *parser) emit(tok *checks.TextToken) {
	tok.Reference = p.reference()
	p.book.Tokens = append(p.book.Tokens, tok)
}

// trimLast drops trailing whitespace at the end of a paragraph.
func (p *parser) trimLast() {
	if p.book == nil || len(p.book.Tokens) == 0 {
		return
	}
	last := p.book.Tokens[len(p.book.Tokens)-1].(*checks.TextToken)
	if last.Type.IsNumber() {
		return
	}
	last.Content = strings.TrimRight(last.Content, " \t")
	if last.Content == "" {
		p.book.Tokens = p.book.Tokens[:len(p.book.Tokens)-1]
	}
}

func (p *parser) reference() string {
	switch {
	case p.chapter == "":
		return p.book.ID
	case p.verse == "":
		return p.book.ID + " " + p.chapter
	default:
		return p.book.ID + " " + p.chapter + ":" + p.verse
	}
}

// cutLine splits off the rest of the current line.
func cutLine(s string) (line, rest string) {
	line, rest, _ = strings.Cut(s, "\n")
	return strings.TrimSpace(line), rest
}

// cutNumber splits off a chapter or verse number (up to whitespace).
func cutNumber(s string) (num, rest string) {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, " \t\n\\")
	if end < 0 {
		return s, ""
	}
	rest = s[end:]
	if rest[0] != '\\' {
		rest = rest[1:]
	}
	return s[:end], rest
}

// Package versification provides chapter and verse counts for Bible books
// and parses scripture references.
package versification

import (
	"strings"
	"sync"

	"github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// System identifies a versification system.
type System string

// Supported versification systems.
const (
	KJV  System = "KJV"
	NRSV System = "NRSV" // NRSV differs from KJV only outside the checked range
)

// Book describes one book: its USFM code, OSIS id, English name and the
// verse count of every chapter.
type Book struct {
	ID       string
	OSIS     string
	Name     string
	Chapters []int
}

// LastChapter returns the number of chapters in the book.
func (b Book) LastChapter() int { return len(b.Chapters) }

// LastVerse returns the number of verses in chapter, or 0 when the chapter
// does not exist.
func (b Book) LastVerse(chapter int) int {
	if chapter < 1 || chapter > len(b.Chapters) {
		return 0
	}
	return b.Chapters[chapter-1]
}

// Versification answers book, chapter and verse range questions for one
// system.
type Versification struct {
	System System
	books  []Book
	index  map[string]int
}

// New returns the versification for sys. An empty sys means KJV.
func New(sys System) (*Versification, error) {
	switch System(strings.ToUpper(string(sys))) {
	case KJV, "":
		return build(KJV, kjvBooks), nil
	case NRSV:
		return build(NRSV, kjvBooks), nil
	default:
		return nil, errors.NewUnsupported("versification "+string(sys), "only KJV and NRSV are available")
	}
}

var defaultVersification = sync.OnceValue(func() *Versification {
	return build(KJV, kjvBooks)
})

// Default returns the shared KJV versification.
func Default() *Versification {
	return defaultVersification()
}

func build(sys System, books []Book) *Versification {
	v := &Versification{
		System: sys,
		books:  books,
		index:  make(map[string]int, len(books)*3),
	}
	for i, b := range books {
		v.index[normalize(b.ID)] = i
		v.index[normalize(b.OSIS)] = i
		v.index[normalize(b.Name)] = i
	}
	return v
}

func normalize(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), ""))
}

// Book finds a book by USFM code, OSIS id or English name,
// case-insensitively.
func (v *Versification) Book(name string) (Book, bool) {
	i, ok := v.index[normalize(name)]
	if !ok {
		return Book{}, false
	}
	return v.books[i], true
}

// Books returns the books in canonical order.
func (v *Versification) Books() []Book {
	return v.books
}

// LastChapter returns the number of chapters in book, or 0 when the book
// is unknown.
func (v *Versification) LastChapter(book string) int {
	b, ok := v.Book(book)
	if !ok {
		return 0
	}
	return b.LastChapter()
}

// LastVerse returns the number of verses in the chapter, or 0 when the
// book or chapter is unknown.
func (v *Versification) LastVerse(book string, chapter int) int {
	b, ok := v.Book(book)
	if !ok {
		return 0
	}
	return b.LastVerse(chapter)
}

package checks

import (
	"iter"

	"github.com/google/uuid"
)

// RecordFunc receives each finding together with the ID of the checker that
// produced it.
type RecordFunc func(result TokenSubstring, checkID uuid.UUID)

// Checker is a single-pass consistency check over the tokens of one book.
// Check consumes tokens once, in order, and reports findings through
// record. Independently constructed checkers share no mutable state.
type Checker interface {
	ID() uuid.UUID
	Name() string
	Check(tokens iter.Seq[Token], record RecordFunc)
}

// InventoryChecker is a Checker that can also list every occurrence of the
// items it checks, valid or not, for inventory display.
type InventoryChecker interface {
	Checker

	// References returns every occurrence whose inventory key equals key,
	// or every occurrence when key is empty.
	References(tokens iter.Seq[Token], key string) []TokenSubstring
}

// Recorder accumulates findings in report order.
type Recorder struct {
	Results  []TokenSubstring
	CheckIDs []uuid.UUID
}

// Record appends a finding. It satisfies RecordFunc.
func (r *Recorder) Record(result TokenSubstring, checkID uuid.UUID) {
	r.Results = append(r.Results, result)
	r.CheckIDs = append(r.CheckIDs, checkID)
}

// Messages returns the messages of all recorded findings.
func (r *Recorder) Messages() []string {
	msgs := make([]string, len(r.Results))
	for i, res := range r.Results {
		msgs[i] = res.Message
	}
	return msgs
}

// WordAndPunct is one word of a text segment plus the punctuation that
// directly follows it. Offset is the byte offset of Word (or of Punct when
// Word is empty) in the segmented text.
type WordAndPunct struct {
	Word   string
	Punct  string
	Offset int
}

// End returns the byte offset just past the punctuation.
func (w WordAndPunct) End() int {
	return w.Offset + len(w.Word) + len(w.Punct)
}

// CharacterCategorizer classifies characters for a writing system.
type CharacterCategorizer interface {
	IsWordFormingCharacter(r rune) bool
	IsDiacritic(r rune) bool
	IsUpper(r rune) bool
	IsLower(r rune) bool
	IsTitle(r rune) bool
	IsPunctuation(r rune) bool
	ToLower(s string) string
	WordAndPuncts(text string) []WordAndPunct
	DiacriticsFollowBaseCharacters() bool
}

// ParameterSource supplies checker configuration. Lookups are read-only and
// idempotent; a missing parameter yields "".
type ParameterSource interface {
	ParameterValue(name string) string
	LocalizedString(key string) string
	Categorizer() CharacterCategorizer
}

// ParameterStore is a ParameterSource that can persist parameter values.
type ParameterStore interface {
	ParameterSource
	SetParameterValue(name, value string) error
}

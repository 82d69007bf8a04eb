// Package checks provides the shared model for the Scripture text
// consistency checks: the annotated token stream consumed by every
// checker, the positioned findings they report and the narrow interfaces
// through which checkers read configuration.
//
// # Token Stream
//
// A tokenizer (outside this package) splits one book into tokens. Each
// token carries its text plus:
//
//   - TextType: verse text, chapter/verse number, note, picture caption, other
//   - paragraph and note boundaries (IsParagraphStart, IsNoteStart)
//   - paragraph and character style names
//   - locale and a scripture reference for display
//
// # Findings
//
// Checkers report TokenSubstring values: a byte range within one token (or
// a run of adjacent tokens) with a message and an inventory key. Offsets
// always index the immutable token text.
//
// # Example
//
//	chk := repeatedwords.New(src)
//	var rec checks.Recorder
//	chk.Check(slices.Values(tokens), rec.Record)
//	for _, r := range rec.Results {
//	    fmt.Println(r.Token().ScrRefString(), r.Text(), r.Message)
//	}
package checks

package checks

import "iter"

// VerseTextToken decorates a token so that body text immediately following
// a paragraph-initial chapter or verse number is itself treated as the
// start of the paragraph. It owns a copy of the wrapped token's fields; the
// effective paragraph-start flag is recomputed on every Reset.
type VerseTextToken struct {
	TextToken
	inner          Token
	paragraphStart bool
}

// NewVerseTextToken wraps tok. inheritParagraphStart marks that the token
// directly follows a paragraph-initial chapter/verse number.
func NewVerseTextToken(tok Token, inheritParagraphStart bool) VerseTextToken {
	var v VerseTextToken
	v.Reset(tok, inheritParagraphStart)
	return v
}

// Reset rewraps v around tok.
func (v *VerseTextToken) Reset(tok Token, inheritParagraphStart bool) {
	v.inner = tok
	v.TextToken = Snapshot(tok)
	v.paragraphStart = tok.IsParagraphStart() ||
		(inheritParagraphStart && !tok.TextType().IsNumber())
}

// IsParagraphStart returns the effective paragraph-start flag.
func (v *VerseTextToken) IsParagraphStart() bool { return v.paragraphStart }

// Unwrap returns the underlying token.
func (v *VerseTextToken) Unwrap() Token { return v.inner }

// Unwrap returns the innermost token behind any VerseTextToken wrapping.
func Unwrap(tok Token) Token {
	for {
		vt, ok := tok.(*VerseTextToken)
		if !ok || vt.inner == nil {
			return tok
		}
		tok = vt.inner
	}
}

// ParagraphStarts wraps every token of seq in a VerseTextToken. A chapter or
// verse number token that starts a paragraph (or follows one that did)
// passes the paragraph start on to the next text token.
func ParagraphStarts(seq iter.Seq[Token]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		pending := false
		for tok := range seq {
			vt := NewVerseTextToken(tok, pending)
			if tok.TextType().IsNumber() {
				pending = pending || tok.IsParagraphStart()
			} else {
				pending = false
			}
			if !yield(&vt) {
				return
			}
		}
	}
}

// Indexed numbers the tokens of seq by stream position.
func Indexed(seq iter.Seq[Token]) iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		i := 0
		for tok := range seq {
			if !yield(i, tok) {
				return
			}
			i++
		}
	}
}

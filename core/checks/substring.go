package checks

import (
	"strings"
	"unicode/utf8"
)

// TokenSubstring is a positioned finding: a byte range of one token, or of
// a run of adjacent tokens, with a message and an inventory key.
//
// Offset indexes the first token's text and EndOffset (exclusive) the last
// token's text. For single-token substrings both index the same text.
// The substring references its tokens; it never owns them.
type TokenSubstring struct {
	tokens     []Token
	firstIndex int

	Offset    int
	EndOffset int

	// Message is the (localized) description of the finding.
	Message string

	// InventoryText is the normalized key used to group findings, such as a
	// punctuation pattern or an invalid character sequence. Empty means the
	// covered text is the key.
	InventoryText string
}

// NewTokenSubstring creates a substring of length bytes at offset in tok.
// index is the token's position in the stream.
func NewTokenSubstring(tok Token, index, offset, length int) TokenSubstring {
	return TokenSubstring{
		tokens:     []Token{Unwrap(tok)},
		firstIndex: index,
		Offset:     offset,
		EndOffset:  offset + length,
	}
}

// Token returns the first token covered by the substring.
func (s TokenSubstring) Token() Token {
	if len(s.tokens) == 0 {
		return nil
	}
	return s.tokens[0]
}

// LastToken returns the last token covered by the substring.
func (s TokenSubstring) LastToken() Token {
	if len(s.tokens) == 0 {
		return nil
	}
	return s.tokens[len(s.tokens)-1]
}

// Tokens returns every covered token in stream order.
func (s TokenSubstring) Tokens() []Token { return s.tokens }

// Index returns the stream position of the first token.
func (s TokenSubstring) Index() int { return s.firstIndex }

// LastIndex returns the stream position of the last token.
func (s TokenSubstring) LastIndex() int { return s.firstIndex + len(s.tokens) - 1 }

// IsMultiToken reports whether the substring spans more than one token.
func (s TokenSubstring) IsMultiToken() bool { return len(s.tokens) > 1 }

// Length returns the covered length in bytes.
func (s TokenSubstring) Length() int {
	if !s.IsMultiToken() {
		return s.EndOffset - s.Offset
	}
	n := len(s.tokens[0].Text()) - s.Offset + s.EndOffset
	for _, tok := range s.tokens[1 : len(s.tokens)-1] {
		n += len(tok.Text())
	}
	return n
}

// Text returns the covered text.
func (s TokenSubstring) Text() string {
	switch len(s.tokens) {
	case 0:
		return ""
	case 1:
		return safeSlice(s.tokens[0].Text(), s.Offset, s.EndOffset)
	}
	var sb strings.Builder
	first := s.tokens[0].Text()
	sb.WriteString(safeSlice(first, s.Offset, len(first)))
	for _, tok := range s.tokens[1 : len(s.tokens)-1] {
		sb.WriteString(tok.Text())
	}
	sb.WriteString(safeSlice(s.LastToken().Text(), 0, s.EndOffset))
	return sb.String()
}

// Key returns the inventory key, defaulting to the covered text.
func (s TokenSubstring) Key() string {
	if s.InventoryText != "" {
		return s.InventoryText
	}
	return s.Text()
}

// Extend grows the substring to endOffset within tok. It succeeds only when
// tok is the current last token (at or past EndOffset) or the token
// directly after it in the stream.
func (s *TokenSubstring) Extend(tok Token, index, endOffset int) bool {
	switch index {
	case s.LastIndex():
		if endOffset < s.EndOffset {
			return false
		}
	case s.LastIndex() + 1:
		s.tokens = append(s.tokens[:len(s.tokens):len(s.tokens)], Unwrap(tok))
	default:
		return false
	}
	s.EndOffset = endOffset
	return true
}

// WithMessage returns a copy of s carrying msg.
func (s TokenSubstring) WithMessage(msg string) TokenSubstring {
	s.Message = msg
	return s
}

// WithKey returns a copy of s carrying the inventory key.
func (s TokenSubstring) WithKey(key string) TokenSubstring {
	s.InventoryText = key
	return s
}

// RuneLength returns the number of characters covered.
func (s TokenSubstring) RuneLength() int {
	return utf8.RuneCountInString(s.Text())
}

func safeSlice(text string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(text) {
		to = len(text)
	}
	if from >= to {
		return ""
	}
	return text[from:to]
}

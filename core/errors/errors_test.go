package errors

import (
	"errors"
	"io"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "parameter", ID: "StylesInfo"},
			wantMsg:  "parameter not found: StylesInfo",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "book"},
			wantMsg:  "book not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("PunctCheckLevel", "unknown level \"Expert\"")
	want := `validation failed for PunctCheckLevel: unknown level "Expert"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}

	anon := &ValidationError{Message: "empty"}
	if got := anon.Error(); got != "validation failed: empty" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseError(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := NewParseWrap("XML", "QuotationMarkInfo", inner)
	want := "failed to parse XML at QuotationMarkInfo: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, inner) {
		t.Error("ParseError should unwrap to its cause")
	}

	plain := NewParse("USFM", "", "missing \\id")
	if !Is(plain, ErrInvalidInput) {
		t.Error("ParseError without cause should unwrap to ErrInvalidInput")
	}
	if got := plain.Error(); got != `failed to parse USFM: missing \id` {
		t.Errorf("Error() = %q", got)
	}
}

func TestIOError(t *testing.T) {
	err := NewIO("open", "settings.db", io.ErrUnexpectedEOF)
	if got := err.Error(); got != "failed to open settings.db: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, io.ErrUnexpectedEOF) {
		t.Error("IOError should unwrap to its cause")
	}
	noPath := NewIO("write", "", io.EOF)
	if got := noPath.Error(); got != "failed to write: EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("versification", "no table for Ethiopian")
	if got := err.Error(); got != "unsupported versification: no table for Ethiopian" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrUnsupported) {
		t.Error("UnsupportedError should unwrap to ErrUnsupported")
	}
	var ue *UnsupportedError
	if !As(Wrap(err, "loading"), &ue) {
		t.Error("As should find UnsupportedError through Wrap")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}
	base := errors.New("base")
	err := Wrapf(base, "check %s", "quotes")
	if got := err.Error(); got != "check quotes: base" {
		t.Errorf("Wrapf() = %q", got)
	}
	if !Is(err, base) {
		t.Error("Wrapf should preserve the chain")
	}
}

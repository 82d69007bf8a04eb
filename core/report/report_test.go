package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FocuswithJustin/JuniperChecks/core/checks/checktest"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/repeatedwords"
	"github.com/FocuswithJustin/JuniperChecks/core/runner"
)

func sampleResults(t *testing.T) []runner.Result {
	t.Helper()
	src := checktest.Source(nil)
	tokens := checktest.NewBuilder("GEN").Chapter("1").Para("p").Verse("1").Text("In the the beginning").Tokens()
	results, err := runner.New(repeatedwords.New(src)).Run(context.Background(), "GEN", tokens)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return results
}

func TestNew(t *testing.T) {
	r := New("GEN", sampleResults(t))
	if r.Book != "GEN" {
		t.Errorf("Book = %q, want GEN", r.Book)
	}
	if len(r.Checks) != 1 || r.Checks[0].Findings != 1 || r.Checks[0].ID != repeatedwords.ID {
		t.Fatalf("Checks = %+v", r.Checks)
	}
	if len(r.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(r.Findings))
	}
	f := r.Findings[0]
	if f.Reference != "GEN 1:1" || f.Text != "the" || f.Offset != 7 || f.Token != 2 || f.Key != "the" {
		t.Errorf("finding = %+v", f)
	}
	if f.Message != "Repeated word" {
		t.Errorf("Message = %q", f.Message)
	}
}

func TestFingerprintStable(t *testing.T) {
	a := New("GEN", sampleResults(t))
	b := New("GEN", sampleResults(t))
	if a.RunID == b.RunID {
		t.Error("run IDs should differ")
	}
	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Errorf("fingerprints differ: %s vs %s", fa, fb)
	}
	if len(fa) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(fa))
	}

	b.Findings[0].Message = "changed"
	if fc, _ := b.Fingerprint(); fc == fa {
		t.Error("fingerprint should change with findings")
	}
}

func TestFingerprintError(t *testing.T) {
	orig := jsonMarshal
	defer func() { jsonMarshal = orig }()
	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("boom") }

	if _, err := New("GEN", nil).Fingerprint(); err == nil {
		t.Error("expected error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := timeNow
	defer func() { timeNow = orig }()
	timeNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	r := New("GEN", sampleResults(t))
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got.RunID != r.RunID || !got.Created.Equal(r.Created) || len(got.Findings) != 1 {
		t.Errorf("Read() = %+v, want %+v", got, r)
	}
}

func TestXZRoundTrip(t *testing.T) {
	r := New("GEN", sampleResults(t))
	var buf bytes.Buffer
	if err := r.WriteXZ(&buf); err != nil {
		t.Fatalf("WriteXZ error: %v", err)
	}
	if !IsXZ(buf.Bytes()) {
		t.Fatal("output is not xz")
	}
	got, err := ReadXZ(&buf)
	if err != nil {
		t.Fatalf("ReadXZ error: %v", err)
	}
	want, _ := r.Fingerprint()
	if fp, _ := got.Fingerprint(); fp != want {
		t.Errorf("fingerprint after round trip = %s, want %s", fp, want)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(bytes.NewBufferString("{")); err == nil {
		t.Error("Read: expected error for truncated JSON")
	}
	if _, err := ReadXZ(bytes.NewBufferString("plain")); err == nil {
		t.Error("ReadXZ: expected error for non-xz input")
	}
	if IsXZ([]byte("{}")) {
		t.Error("IsXZ({}) = true")
	}
}

func TestEmptyFindingsEncodeAsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := New("GEN", nil).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"findings": []`)) {
		t.Errorf("output = %s", buf.String())
	}
}

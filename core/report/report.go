// Package report turns checker results into a serializable run report,
// fingerprints its findings and writes it as JSON, optionally xz
// compressed.
package report

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/runner"
)

// Injectable functions for testing
var (
	xzNewWriter = xz.NewWriter
	xzNewReader = xz.NewReader
	jsonMarshal = json.Marshal
	timeNow     = time.Now
)

// Finding is one positioned finding.
type Finding struct {
	CheckID   uuid.UUID `json:"check_id"`
	Reference string    `json:"reference"`
	Token     int       `json:"token"`
	LastToken int       `json:"last_token"`
	Offset    int       `json:"offset"`
	EndOffset int       `json:"end_offset"`
	Text      string    `json:"text"`
	Message   string    `json:"message"`
	Key       string    `json:"key,omitempty"`
}

// CheckSummary describes one check of the run.
type CheckSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Findings   int       `json:"findings"`
	DurationMS int64     `json:"duration_ms"`
	Skipped    bool      `json:"skipped,omitempty"`
}

// Report is the outcome of running checks over one book.
type Report struct {
	RunID    uuid.UUID      `json:"run_id"`
	Book     string         `json:"book"`
	Created  time.Time      `json:"created"`
	Checks   []CheckSummary `json:"checks"`
	Findings []Finding      `json:"findings"`
}

// New builds a report for book with a fresh run ID. Findings keep the order
// of results and, within a check, the order they were recorded.
func New(book string, results []runner.Result) *Report {
	r := &Report{
		RunID:    uuid.New(),
		Book:     book,
		Created:  timeNow().UTC(),
		Checks:   make([]CheckSummary, 0, len(results)),
		Findings: []Finding{},
	}
	for _, res := range results {
		r.Checks = append(r.Checks, CheckSummary{
			ID:         res.CheckID,
			Name:       res.Name,
			Findings:   len(res.Findings),
			DurationMS: res.Duration.Milliseconds(),
			Skipped:    res.Skipped,
		})
		for _, f := range res.Findings {
			ref := ""
			if tok := f.Token(); tok != nil {
				ref = tok.ScrRefString()
			}
			r.Findings = append(r.Findings, Finding{
				CheckID:   res.CheckID,
				Reference: ref,
				Token:     f.Index(),
				LastToken: f.LastIndex(),
				Offset:    f.Offset,
				EndOffset: f.EndOffset,
				Text:      f.Text(),
				Message:   f.Message,
				Key:       f.InventoryText,
			})
		}
	}
	return r
}

// Fingerprint returns the hex BLAKE3 hash of the findings. Run ID, time and
// durations are excluded, so identical runs over the same text and
// configuration share a fingerprint.
func (r *Report) Fingerprint() (string, error) {
	data, err := jsonMarshal(r.Findings)
	if err != nil {
		return "", errors.Wrap(err, "encoding findings")
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.NewIO("write", "report", err)
	}
	return nil
}

// WriteXZ writes the JSON report xz compressed.
func (r *Report) WriteXZ(w io.Writer) error {
	xw, err := xzNewWriter(w)
	if err != nil {
		return errors.NewIO("compress", "report", err)
	}
	if err := r.WriteJSON(xw); err != nil {
		xw.Close()
		return err
	}
	if err := xw.Close(); err != nil {
		return errors.NewIO("compress", "report", err)
	}
	return nil
}

// Read decodes a JSON report.
func Read(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, errors.NewParseWrap("JSON", "report", err)
	}
	return &r, nil
}

// ReadXZ decodes an xz compressed JSON report.
func ReadXZ(rd io.Reader) (*Report, error) {
	xr, err := xzNewReader(rd)
	if err != nil {
		return nil, errors.NewParseWrap("xz", "report", err)
	}
	return Read(xr)
}

// IsXZ reports whether data starts with the xz magic bytes.
func IsXZ(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00})
}

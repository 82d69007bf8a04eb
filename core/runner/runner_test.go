package runner

import (
	"context"
	"iter"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/checktest"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/repeatedwords"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// countingChecker reports one finding per token.
type countingChecker struct {
	name  string
	calls *atomic.Int32
}

func (c countingChecker) ID() uuid.UUID { return uuid.NewSHA1(uuid.NameSpaceOID, []byte(c.name)) }

func (c countingChecker) Name() string { return c.name }

func (c countingChecker) Check(tokens iter.Seq[checks.Token], record checks.RecordFunc) {
	c.calls.Add(1)
	for i, tok := range checks.Indexed(tokens) {
		record(checks.NewTokenSubstring(tok, i, 0, 0).WithMessage(c.name), c.ID())
	}
}

func TestRunOrder(t *testing.T) {
	var calls atomic.Int32
	var cs []checks.Checker
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		cs = append(cs, countingChecker{name: name, calls: &calls})
	}
	tokens := checktest.Plain("one", "two")

	results, err := New(cs...).WithWorkers(3).Run(context.Background(), "GEN", tokens)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, r := range results {
		if r.Name != cs[i].Name() {
			t.Errorf("results[%d].Name = %q, want %q", i, r.Name, cs[i].Name())
		}
		if r.CheckID != cs[i].ID() {
			t.Errorf("results[%d].CheckID mismatch", i)
		}
		if len(r.Findings) != 2 {
			t.Errorf("results[%d] has %d findings, want 2", i, len(r.Findings))
		}
	}
	if calls.Load() != 5 {
		t.Errorf("checks run %d times, want 5", calls.Load())
	}
	if Count(results) != 10 {
		t.Errorf("Count() = %d, want 10", Count(results))
	}
}

func TestRunCancelled(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(countingChecker{name: "a", calls: &calls}).Run(ctx, "GEN", checktest.Plain("x"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if len(results) != 1 || !results[0].Skipped {
		t.Errorf("results = %+v, want one skipped result", results)
	}
	if calls.Load() != 0 {
		t.Errorf("check ran %d times after cancel", calls.Load())
	}
}

func TestRunEmpty(t *testing.T) {
	results, err := New().Run(context.Background(), "GEN", nil)
	if err != nil || len(results) != 0 {
		t.Errorf("Run() = %v, %v; want no results", results, err)
	}
}

func TestRunMatchesDirectCheck(t *testing.T) {
	src := checktest.Source(nil)
	tokens := checktest.Plain("the the end", " and and")
	direct := checktest.Run(repeatedwords.New(src), tokens).Messages()

	results, err := New(repeatedwords.New(src)).Run(context.Background(), "GEN", tokens)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	var got []string
	for _, f := range results[0].Findings {
		got = append(got, f.Message)
	}
	if !slices.Equal(got, direct) {
		t.Errorf("runner findings = %q, want %q", got, direct)
	}
}

func TestBuild(t *testing.T) {
	src := checktest.Source(nil)
	all, err := Build(src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(all) != len(Names()) {
		t.Errorf("Build() built %d checks, want %d", len(all), len(Names()))
	}
	seen := make(map[uuid.UUID]bool)
	for _, c := range all {
		if seen[c.ID()] {
			t.Errorf("duplicate check ID %v", c.ID())
		}
		seen[c.ID()] = true
	}

	some, err := Build(src, "Quotation", " repeatedwords ")
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if some[0].Name() != "Quotations" || some[1].Name() != repeatedwords.Name {
		t.Errorf("Build order = %q, %q", some[0].Name(), some[1].Name())
	}

	if _, err := Build(src, "spelling"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Build(spelling) error = %v, want not found", err)
	}
}

func TestBuildInventory(t *testing.T) {
	src := checktest.Source(map[string]string{repeatedwords.ParamRepeatable: "that"})
	inv, err := BuildInventory(src, "repeatedwords")
	if err != nil {
		t.Fatalf("BuildInventory error: %v", err)
	}
	if got := inv.Inventory().ValidItems(); got != "that" {
		t.Errorf("ValidItems() = %q, want %q", got, "that")
	}
	if _, err := BuildInventory(src, "quotation"); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("BuildInventory(quotation) error = %v, want unsupported", err)
	}
}

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool[int, int](0, 10)
	pool.Start(func(n int) int { return n * n })
	for i := range 10 {
		pool.Submit(i)
	}
	pool.Close()
	sum := 0
	for r := range pool.Results() {
		sum += r
	}
	if sum != 285 {
		t.Errorf("sum of squares = %d, want 285", sum)
	}
}

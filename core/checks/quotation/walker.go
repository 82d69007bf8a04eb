package quotation

import (
	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/checks/quotemarks"
)

// slot is an open level. Missing slots stand in for levels that were
// skipped by an opener nested too deep.
type slot struct {
	sub     checks.TokenSubstring
	missing bool
}

type lastMark int

const (
	lastNone lastMark = iota
	lastOpener
	lastCloser
)

// walker resolves the nesting of one run of collected events.
type walker struct {
	q       *quotemarks.Info
	verbose bool
	report  func(sub checks.TokenSubstring, key string, args ...any)

	open       []slot // open[i] holds level i+1
	pending    []int  // levels whose continuation marks are still expected
	pendingAt  checks.TokenSubstring
	recovering bool
	last       lastMark
}

func (w *walker) walk(events []event) {
	w.open = w.open[:0]
	w.pending = nil
	w.recovering = false
	w.last = lastNone

	for _, ev := range events {
		if ev.para {
			w.paragraph(ev)
			continue
		}
		if len(w.pending) > 0 && w.continues(ev) {
			continue
		}
		w.mark(ev)
	}
	w.missingContinuers()
	w.end()
}

func (w *walker) annotate(sub checks.TokenSubstring, key string, level int) {
	if w.verbose {
		w.report(sub, key, level)
	}
}

func (w *walker) paragraph(ev event) {
	w.missingContinuers()
	w.pending = w.q.ContinuedLevels(len(w.open))
	w.pendingAt = ev.sub
}

// continues consumes ev when it is the next expected continuation mark.
// Anything else ends the continuation and reports what was missing.
func (w *walker) continues(ev event) bool {
	level := w.pending[0]
	if ev.continuer && ev.mark == w.q.ContinuationFor(level) {
		w.pending = w.pending[1:]
		w.annotate(ev.sub, msgContinued, level)
		return true
	}
	w.missingContinuers()
	return false
}

func (w *walker) missingContinuers() {
	if len(w.pending) == 0 {
		return
	}
	first, last := w.pending[0], w.pending[len(w.pending)-1]
	if first == last {
		w.report(w.pendingAt, msgMissingContinuer, first)
	} else {
		w.report(w.pendingAt, msgMissingContinuers, first, last)
	}
	w.pending = nil
	w.recovering = true
}

func (w *walker) mark(ev event) {
	level := len(w.open)
	if ev.open {
		w.opener(ev, level)
		w.last = lastOpener
	} else {
		w.closer(ev, level)
		w.last = lastCloser
	}
	w.recovering = false
}

func (w *walker) opener(ev event, level int) {
	target, ok := atOrAbove(w.q.OpenLevels(ev.mark), level+1)
	if !checks.Assert(Name, ok, "opening mark without a level", "mark", ev.mark) {
		return
	}
	switch {
	case target == level+1:
	case w.recovering && target <= level:
		// The previous paragraph ended the quotation without closing it.
		w.open = w.open[:target-1]
	case target == 1 && !w.q.HasTopLevelCloser():
		w.unmatchedDownTo(2)
		w.open = w.open[:0]
	case target > level+1:
		for range target - level - 1 {
			w.open = append(w.open, slot{sub: ev.sub, missing: true})
		}
		if target-1 == level+1 {
			w.report(ev.sub, msgMissingOpening, level+1)
		} else {
			w.report(ev.sub, msgMissingOpenings, level+1, target-1)
		}
	default:
		w.unmatchedDownTo(target)
	}
	w.open = append(w.open, slot{sub: ev.sub})
	w.annotate(ev.sub, msgOpened, target)
}

func (w *walker) closer(ev event, level int) {
	target, ok := atOrBelow(w.q.CloseLevels(ev.mark), level)
	if !checks.Assert(Name, ok, "closing mark without a level", "mark", ev.mark) {
		return
	}
	switch {
	case target == level:
	case level == 0 || target > level:
		if !(w.q.CollapseAdjacent && w.last == lastCloser) {
			w.report(ev.sub, msgUnmatchedClosing, target)
		}
		return
	default:
		w.unmatchedDownTo(target + 1)
	}
	w.open = w.open[:target-1]
	w.annotate(ev.sub, msgClosed, target)
}

// unmatchedDownTo reports the open levels from the innermost down to
// level, then drops them.
func (w *walker) unmatchedDownTo(level int) {
	for l := len(w.open); l >= level; l-- {
		if !w.open[l-1].missing {
			w.report(w.open[l-1].sub, msgUnmatchedOpening, l)
		}
	}
	if level <= len(w.open) {
		w.open = w.open[:level-1]
	}
}

// end reports levels left open when the run ends. A run ending on an
// opener with adjacent quotes collapsed is taken to close them all.
func (w *walker) end() {
	if w.q.CollapseAdjacent && w.last == lastOpener {
		return
	}
	for l := len(w.open); l >= 1; l-- {
		s := w.open[l-1]
		if s.missing || (l == 1 && !w.q.HasTopLevelCloser()) {
			continue
		}
		w.report(s.sub, msgUnmatchedOpening, l)
	}
}

// atOrAbove returns the first of the ascending levels at or above want,
// else the deepest one below it.
func atOrAbove(levels []int, want int) (int, bool) {
	if len(levels) == 0 {
		return 0, false
	}
	for _, l := range levels {
		if l >= want {
			return l, true
		}
	}
	return levels[len(levels)-1], true
}

// atOrBelow returns the last of the ascending levels at or below want,
// else the shallowest one above it.
func atOrBelow(levels []int, want int) (int, bool) {
	if len(levels) == 0 {
		return 0, false
	}
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] <= want {
			return levels[i], true
		}
	}
	return levels[0], true
}

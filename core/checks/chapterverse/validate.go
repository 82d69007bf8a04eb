package chapterverse

import (
	"strconv"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/versification"
)

const (
	msgInvalidChapter     = "Invalid chapter number"
	msgChapterOutOfRange  = "Chapter number out of range"
	msgDuplicateChapter   = "Duplicate chapter number"
	msgChapterOutOfOrder  = "Chapter out of order; expected chapter %d"
	msgMissingChapter     = "Missing chapter number %d"
	msgInvalidVerse       = "Invalid verse number"
	msgDuplicateVerse     = "Duplicate verse number"
	msgDuplicateVerses    = "Duplicate verse numbers"
	msgVerseOutOfRange    = "Verse number out of range"
	msgVerseOutOfOrder    = "Verse number out of order; expected verse %d"
	msgMissingVerse       = "Missing verse number %s"
	msgMissingVerses      = "Missing verse numbers %d-%d"
	msgMissingVerseText   = "Missing verse text in verse %s"
	msgSpaceInVerseNumber = "Space found in verse number"
	msgSpaceInVerseBridge = "Space found in verse bridge"
)

type validator struct {
	src     checks.ParameterSource
	record  checks.RecordFunc
	vers    *versification.Versification
	book    string
	filter  int
	zero    rune
	bridges *BridgeParser
}

func (v *validator) report(sub checks.TokenSubstring, key string, args ...any) {
	v.record(sub.WithMessage(checks.Message(v.src, key, args...)), ID)
}

// chapters reports at most one problem per chapter number, then the
// chapters never seen.
func (v *validator) chapters(chapters []*chapterEntry) {
	last := v.vers.LastChapter(v.book)
	seen := make(map[int]bool)
	next := 1

	for _, ch := range chapters {
		if !ch.implicit {
			ch.number = parseChapter(ch.tok.Text(), v.zero)
		}
		n := ch.number

		var key string
		var args []any
		switch {
		case n < 1:
			key = msgInvalidChapter
		case n > last:
			key = msgChapterOutOfRange
		case seen[n]:
			key = msgDuplicateChapter
		case n < next:
			key, args = msgChapterOutOfOrder, []any{next}
		}
		ch.valid = n >= 1 && n <= last && !seen[n]
		if n >= 1 {
			seen[n] = true
			next = max(next, n+1)
		}
		if key != "" && (v.filter == 0 || n == v.filter) {
			v.report(ch.whole(), key, args...)
		}
	}

	if v.filter != 0 {
		return
	}
	for n := 1; n <= last; n++ {
		if seen[n] {
			continue
		}
		v.report(nearestBefore(chapters, n).point(), msgMissingChapter, n)
	}
}

// nearestBefore returns the last chapter in stream order numbered below n,
// or the first chapter when there is none.
func nearestBefore(chapters []*chapterEntry, n int) *chapterEntry {
	var best *chapterEntry
	for _, ch := range chapters {
		if ch.number >= 1 && ch.number < n && (best == nil || ch.number >= best.number) {
			best = ch
		}
	}
	if best == nil {
		return chapters[0]
	}
	return best
}

// verses validates the verse numbers of one chapter, then reports gaps.
func (v *validator) verses(ch *chapterEntry) {
	last := v.vers.LastVerse(v.book, ch.number)
	found := make([]*verseEntry, last+1)
	next := 1
	expectB := 0

	for _, ve := range ch.verses {
		if ve.implicit {
			ve.rng = VerseRange{Start: 1, End: 1}
			if last >= 1 {
				found[1] = ve
			}
			next = max(next, 2)
			v.checkText(ve)
			continue
		}

		ve.rng = v.bridges.Parse(asciiDigits(ve.tok.Text(), v.zero))
		r := ve.rng
		if r.Status == Invalid {
			v.report(ve.whole(), msgInvalidVerse)
			v.checkText(ve)
			continue
		}
		if r.SpaceInBridge {
			v.report(ve.whole(), msgSpaceInVerseBridge)
		} else if r.SpaceInNumber {
			v.report(ve.whole(), msgSpaceInVerseNumber)
		}

		continuation := expectB > 0 && r.Start == expectB && r.StartPart == PartB
		switch {
		case r.Status == InvalidFormat:
			v.report(ve.whole(), msgInvalidVerse)
		case !continuation && overlaps(found, r):
			key := msgDuplicateVerse
			if r.IsBridge() {
				key = msgDuplicateVerses
			}
			v.report(ve.whole(), key)
		case r.End > last:
			v.report(ve.whole(), msgVerseOutOfRange)
		case !continuation && r.Start < next:
			v.report(ve.whole(), msgVerseOutOfOrder, next)
		case expectB > 0 && !continuation:
			v.report(ve.whole(), msgMissingVerse, strconv.Itoa(expectB)+v.bridges.letterB)
		case r.StartPart == PartB && !continuation:
			// Part b with no part a, whether or not verses were skipped.
			v.report(ve.whole(), msgMissingVerse, strconv.Itoa(r.Start)+v.bridges.letterA)
		}

		for n := r.Start; n <= r.End && n <= last; n++ {
			found[n] = ve
		}
		next = max(next, r.End+1)
		expectB = 0
		if r.EndPart == PartA {
			expectB = r.End
		}
		v.checkText(ve)
	}

	v.gaps(ch, found)
}

func overlaps(found []*verseEntry, r VerseRange) bool {
	for n := r.Start; n <= r.End && n < len(found); n++ {
		if found[n] != nil {
			return true
		}
	}
	return false
}

func (v *validator) checkText(ve *verseEntry) {
	if ve.textCount == 0 {
		v.report(ve.whole(), msgMissingVerseText, ve.label())
	}
}

// gaps reports runs of verses no token covered, after the token covering
// the verse before the run.
func (v *validator) gaps(ch *chapterEntry, found []*verseEntry) {
	for n := 1; n < len(found); {
		if found[n] != nil {
			n++
			continue
		}
		start := n
		for n < len(found) && found[n] == nil {
			n++
		}
		end := n - 1

		at := ch.point()
		if start > 1 {
			prev := found[start-1]
			at = prev.after()
			if prev.implicit {
				at = prev.start()
			}
		}
		if start == end {
			v.report(at, msgMissingVerse, strconv.Itoa(start))
		} else {
			v.report(at, msgMissingVerses, start, end)
		}
	}
}

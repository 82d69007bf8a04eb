// Package quotemarks reads the QuotationMarkInfo parameter describing the
// quotation marks of each nesting level and how quotations continue across
// paragraphs.
package quotemarks

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
	"github.com/FocuswithJustin/JuniperChecks/core/xml"
	"github.com/FocuswithJustin/JuniperChecks/internal/logging"
)

// Parameter is the name of the QuotationMarkInfo parameter.
const Parameter = "QuotationMarkInfo"

// ContinuationType says which open levels are repeated at the start of a
// paragraph that continues a quotation.
type ContinuationType int

const (
	ContinueNone ContinuationType = iota
	ContinueAll
	ContinueOutermost
	ContinueInnermost
)

// ContinuationMark says whether the opening or the closing mark of a level
// is used to continue it.
type ContinuationMark int

const (
	ContinueWithOpening ContinuationMark = iota
	ContinueWithClosing
)

// Level holds the marks of one nesting level.
type Level struct {
	Open  string
	Close string
}

// Info is the parsed QuotationMarkInfo. Levels[0] is level 1.
type Info struct {
	Levels           []Level
	Continuation     ContinuationType
	ContinuationMark ContinuationMark
	CollapseAdjacent bool

	pattern *regexp.Regexp
}

// Parse reads a QuotationMarkInfo XML value:
//
//	<QuotationMarks ParagraphContinuationType="All" ParagraphContinuationMark="Opening">
//	  <QuotationMark Level="1"><Open>“</Open><Close>”</Close></QuotationMark>
//	</QuotationMarks>
//
// Levels without a Level attribute are numbered in document order.
func Parse(value string) (*Info, error) {
	doc, err := xml.ParseParameter(Parameter, value)
	if err != nil {
		return nil, err
	}
	root := doc.Root()

	info := &Info{
		CollapseAdjacent: root.AttrBool("CollapseAdjacentQuotes"),
	}
	switch strings.ToLower(root.AttrOr("ParagraphContinuationType", "None")) {
	case "all", "requireall":
		info.Continuation = ContinueAll
	case "outermost", "requireoutermost":
		info.Continuation = ContinueOutermost
	case "innermost", "requireinnermost":
		info.Continuation = ContinueInnermost
	case "none":
		info.Continuation = ContinueNone
	default:
		return nil, errors.NewParse("XML", Parameter,
			"unknown ParagraphContinuationType "+root.Attr("ParagraphContinuationType"))
	}
	if strings.EqualFold(root.Attr("ParagraphContinuationMark"), "Closing") {
		info.ContinuationMark = ContinueWithClosing
	}

	type numbered struct {
		n     int
		level Level
	}
	var levels []numbered
	nodes, err := doc.XPath("//QuotationMark")
	if err != nil {
		return nil, errors.NewParseWrap("XML", Parameter, err)
	}
	for i, n := range nodes {
		num := i + 1
		if attr := n.Attr("Level"); attr != "" {
			num, err = strconv.Atoi(strings.TrimSpace(attr))
			if err != nil || num < 1 {
				return nil, errors.NewParse("XML", Parameter, "invalid Level "+attr)
			}
		}
		lvl := Level{
			Open:  strings.TrimSpace(n.ChildText("Open")),
			Close: strings.TrimSpace(n.ChildText("Close")),
		}
		// Level 1 may lack a closer (quotation dashes).
		if lvl.Open == "" || (lvl.Close == "" && num != 1) {
			return nil, errors.NewParse("XML", Parameter, "level "+strconv.Itoa(num)+" needs Open and Close marks")
		}
		levels = append(levels, numbered{num, lvl})
	}
	slices.SortStableFunc(levels, func(a, b numbered) int { return cmp.Compare(a.n, b.n) })
	for i, l := range levels {
		if l.n != i+1 {
			return nil, errors.NewParse("XML", Parameter, "quotation levels must be numbered 1.."+strconv.Itoa(len(levels)))
		}
		info.Levels = append(info.Levels, l.level)
	}
	info.compile()
	return info, nil
}

// FromSource reads QuotationMarkInfo from src. A missing or malformed value
// yields an Info with no levels; the malformed case is logged.
func FromSource(src checks.ParameterSource) *Info {
	value := src.ParameterValue(Parameter)
	if strings.TrimSpace(value) == "" {
		return &Info{}
	}
	info, err := Parse(value)
	if err != nil {
		logging.ConfigError(Parameter, err)
		return &Info{}
	}
	return info
}

func (q *Info) compile() {
	marks := q.Marks()
	if len(marks) == 0 {
		return
	}
	quoted := make([]string, len(marks))
	for i, m := range marks {
		quoted[i] = regexp.QuoteMeta(m)
	}
	q.pattern = regexp.MustCompile(strings.Join(quoted, "|"))
}

// Depth returns the number of configured levels.
func (q *Info) Depth() int { return len(q.Levels) }

// HasTopLevelCloser reports whether level 1 quotations have a closing mark.
func (q *Info) HasTopLevelCloser() bool {
	return len(q.Levels) > 0 && q.Levels[0].Close != ""
}

// Marks returns every distinct mark, longest first so that alternations
// prefer "<<" over "<".
func (q *Info) Marks() []string {
	seen := make(map[string]bool)
	var marks []string
	for _, l := range q.Levels {
		for _, m := range []string{l.Open, l.Close} {
			if m != "" && !seen[m] {
				seen[m] = true
				marks = append(marks, m)
			}
		}
	}
	slices.SortStableFunc(marks, func(a, b string) int { return cmp.Compare(len(b), len(a)) })
	return marks
}

// FindAll returns the [start, end) byte ranges of all marks in text.
func (q *Info) FindAll(text string) [][]int {
	if q.pattern == nil {
		return nil
	}
	return q.pattern.FindAllStringIndex(text, -1)
}

// OpenLevels returns the levels (1-based) that mark opens.
func (q *Info) OpenLevels(mark string) []int {
	var levels []int
	for i, l := range q.Levels {
		if l.Open == mark {
			levels = append(levels, i+1)
		}
	}
	return levels
}

// CloseLevels returns the levels (1-based) that mark closes.
func (q *Info) CloseLevels(mark string) []int {
	if mark == "" {
		return nil
	}
	var levels []int
	for i, l := range q.Levels {
		if l.Close == mark {
			levels = append(levels, i+1)
		}
	}
	return levels
}

// IsOpener reports whether mark opens some level.
func (q *Info) IsOpener(mark string) bool { return len(q.OpenLevels(mark)) > 0 }

// IsCloser reports whether mark closes some level.
func (q *Info) IsCloser(mark string) bool { return len(q.CloseLevels(mark)) > 0 }

// IsAmbiguous reports whether mark both opens and closes.
func (q *Info) IsAmbiguous(mark string) bool { return q.IsOpener(mark) && q.IsCloser(mark) }

// Opens decides the direction of the mark at text[start:end]. Ambiguous
// marks open when they start the text or follow whitespace.
func (q *Info) Opens(text string, start, end int) bool {
	mark := text[start:end]
	if !q.IsAmbiguous(mark) {
		return q.IsOpener(mark)
	}
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return unicode.IsSpace(r)
}

// ContinuedLevels returns the levels that must be repeated at the start of
// a paragraph entered while depth levels are open.
func (q *Info) ContinuedLevels(depth int) []int {
	if depth <= 0 {
		return nil
	}
	switch q.Continuation {
	case ContinueAll:
		levels := make([]int, depth)
		for i := range levels {
			levels[i] = i + 1
		}
		return levels
	case ContinueOutermost:
		return []int{1}
	case ContinueInnermost:
		return []int{depth}
	}
	return nil
}

// ContinuationFor returns the mark that continues level.
func (q *Info) ContinuationFor(level int) string {
	if level < 1 || level > len(q.Levels) {
		return ""
	}
	if q.ContinuationMark == ContinueWithClosing {
		return q.Levels[level-1].Close
	}
	return q.Levels[level-1].Open
}

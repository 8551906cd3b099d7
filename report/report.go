package report

// This file contains the report renderer: formatting aggregates into
// the ordered text report and its bounded top-N console view.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/slowgo/slowgo/model"
)

// Timing fields are printed with 9 fractional digits and left-justified
// to this width, so lexicographic order of whole lines matches numeric
// order by mean as long as all means have the same number of integer
// digits.
const fieldWidth = 12

// Report is the rendered, sorted presentation of all aggregates for a
// point in history: a title line followed by one line per test.
type Report struct {
	Title string
	Lines []string
}

// Render formats one line per aggregate and sorts the body in
// descending lexicographic order, slowest mean first. Lines share a
// fixed-width mean prefix, so the sort is slowest-first with ties
// falling through min, max and finally identifier text. sampleCount is
// the run count displayed in the title.
func Render(aggregates []model.Aggregate, sampleCount int) Report {
	lines := make([]string, 0, len(aggregates))
	for _, agg := range aggregates {
		lines = append(lines, formatLine(agg))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(lines)))

	return Report{
		Title: fmt.Sprintf("Slowest tests, averaged over %d runs:", sampleCount),
		Lines: lines,
	}
}

// SampleCount reads the run count from an arbitrary history entry and
// assumes it is representative of all entries. Tests introduced
// mid-history have shorter sequences, so the displayed count is
// approximate once the suite has grown.
func SampleCount(history model.History) int {
	for _, samples := range history {
		return len(samples)
	}
	return 0
}

func formatLine(agg model.Aggregate) string {
	return fmt.Sprintf("Mean: %s Min: %s Max: %s %s",
		formatSeconds(agg.Mean),
		formatSeconds(agg.Min),
		formatSeconds(agg.Max),
		agg.ID)
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%-*s", fieldWidth, strconv.FormatFloat(seconds, 'f', 9, 64))
}

// TopN returns a view of the first n body lines for bounded console
// output.
func (r Report) TopN(n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(r.Lines) {
		n = len(r.Lines)
	}
	return r.Lines[:n]
}

// String renders the full report: the title followed by one line per
// test, newline terminated. This is exactly what gets written to the
// report file.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteByte('\n')
	for _, line := range r.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

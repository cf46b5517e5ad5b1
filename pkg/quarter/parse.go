// Package quarter parses and orders "YYYY Qn" year-quarter labels.
package quarter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Quarter is a calendar quarter of a given year.
type Quarter struct {
	Year int
	Q    int
}

// Parse reads a label such as "2017 Q1". Whitespace between the year and the
// quarter is optional and the "Q" is case-insensitive.
func Parse(label string) (Quarter, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	idx := strings.LastIndex(s, "Q")
	if idx <= 0 || idx == len(s)-1 {
		return Quarter{}, fmt.Errorf("invalid year quarter %q", label)
	}

	year, err := strconv.Atoi(strings.TrimSpace(s[:idx]))
	if err != nil {
		return Quarter{}, fmt.Errorf("invalid year in %q: %w", label, err)
	}
	q, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return Quarter{}, fmt.Errorf("invalid quarter in %q: %w", label, err)
	}
	if q < 1 || q > 4 {
		return Quarter{}, fmt.Errorf("quarter out of range in %q", label)
	}
	return Quarter{Year: year, Q: q}, nil
}

// MustParse parses a label and panics on error.
// This is intended for use in tests where the label is known to be valid.
func MustParse(label string) Quarter {
	q, err := Parse(label)
	if err != nil {
		panic(err)
	}
	return q
}

// String formats the quarter the way the dataset labels it.
func (q Quarter) String() string {
	return fmt.Sprintf("%d Q%d", q.Year, q.Q)
}

// Index is a monotonically increasing ordinal for the quarter.
func (q Quarter) Index() int {
	return q.Year*4 + q.Q - 1
}

// Before returns true if q is strictly before other.
func (q Quarter) Before(other Quarter) bool {
	return q.Index() < other.Index()
}

// Next returns the following quarter.
func (q Quarter) Next() Quarter {
	if q.Q == 4 {
		return Quarter{Year: q.Year + 1, Q: 1}
	}
	return Quarter{Year: q.Year, Q: q.Q + 1}
}

// Less orders two labels chronologically. Labels that do not parse sort after
// those that do, lexically among themselves.
func Less(a, b string) bool {
	qa, errA := Parse(a)
	qb, errB := Parse(b)
	switch {
	case errA == nil && errB == nil:
		return qa.Before(qb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// Sort orders labels chronologically in place.
func Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool { return Less(labels[i], labels[j]) })
}

// Span returns every quarter label from first to last inclusive.
func Span(first, last Quarter) []string {
	var labels []string
	for q := first; !last.Before(q); q = q.Next() {
		labels = append(labels, q.String())
	}
	return labels
}

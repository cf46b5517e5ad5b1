// Package testutil provides common utility functions for testing.
package testutil

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/quarter"
)

// FirstQuarter and LastQuarter bound the synthetic timeline.
var (
	FirstQuarter = quarter.Quarter{Year: 2017, Q: 1}
	LastQuarter  = quarter.Quarter{Year: 2021, Q: 2}
)

var degreeBase = map[string]float64{
	"Primary":      4,
	"Intermediate": 6,
	"Secondary":    12,
	"Bachelor":     10,
	"Diploma":      8,
	"Master":       6,
	"Doctorate":    2,
}

// SyntheticRate is the deterministic rate the fixture assigns to a cell.
// quarterIndex counts from zero at FirstQuarter.
func SyntheticRate(gender, nationality, degree string, quarterIndex int) float64 {
	rate := degreeBase[degree]
	if gender == "Female" {
		rate = rate*3 + 2
	}
	if nationality == "NonSaudi" {
		rate *= 0.2
	}
	rate += float64(quarterIndex%5) * 0.5
	return math.Round(rate*10) / 10
}

// SyntheticRows returns the fixture rows, header first. Rows are emitted in
// reverse degree order and NonSaudi first so that consumers cannot rely on
// file order for display order.
func SyntheticRows() [][]string {
	rows := [][]string{append([]string(nil), constants.Columns...)}
	for qi, label := range quarter.Span(FirstQuarter, LastQuarter) {
		for _, gender := range []string{"Male", "Female"} {
			for _, nationality := range []string{"NonSaudi", "Saudi"} {
				for d := len(constants.DegreeLevels) - 1; d >= 0; d-- {
					degree := constants.DegreeLevels[d]
					rate := SyntheticRate(gender, nationality, degree, qi)
					rows = append(rows, []string{
						gender,
						nationality,
						degree,
						label,
						strconv.FormatFloat(rate, 'f', -1, 64),
					})
				}
			}
		}
	}
	return rows
}

// SyntheticCSV encodes SyntheticRows as CSV.
func SyntheticCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.WriteAll(SyntheticRows())
	return buf.Bytes()
}

// WriteFile writes content into a file under a per-test temporary directory
// and returns its path.
func WriteFile(t testing.TB, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteSyntheticCSV writes the fixture dataset to a temporary file.
func WriteSyntheticCSV(t testing.TB) string {
	t.Helper()
	return WriteFile(t, constants.DefaultDatasetPath, SyntheticCSV())
}

// ExpectedMean averages the fixture over the rows matching every non-empty
// filter value. The filter keys are column names.
func ExpectedMean(filter map[string]string) float64 {
	total, n := 0.0, 0
	for _, row := range SyntheticRows()[1:] {
		match := true
		for i, col := range constants.Columns[:4] {
			if want, ok := filter[col]; ok && want != row[i] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		rate, _ := strconv.ParseFloat(row[4], 64)
		total += rate
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

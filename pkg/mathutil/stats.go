// Package mathutil summarizes rate distributions.
package mathutil

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// notchFactor scales IQR/sqrt(n) into the half-width of a box plot notch.
const notchFactor = 1.57

// BoxStats summarizes a distribution the way a box plot draws it.
type BoxStats struct {
	N          int       `json:"n"`
	Mean       float64   `json:"mean"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lowerFence"`
	UpperFence float64   `json:"upperFence"`
	NotchLow   float64   `json:"notchLow"`
	NotchHigh  float64   `json:"notchHigh"`
	Outliers   []float64 `json:"outliers,omitempty"`
}

// Summarize computes quartiles, whisker fences (1.5 IQR clipped to the data)
// and median notch bounds. The input slice is not modified.
func Summarize(values []float64) (BoxStats, bool) {
	if len(values) == 0 {
		return BoxStats{}, false
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := BoxStats{
		N:      len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(0.25, sorted),
		Median: quantile(0.5, sorted),
		Q3:     quantile(0.75, sorted),
	}

	iqr := s.Q3 - s.Q1
	lowLimit := s.Q1 - 1.5*iqr
	highLimit := s.Q3 + 1.5*iqr
	s.LowerFence = s.Max
	s.UpperFence = s.Min
	for _, v := range sorted {
		if v < lowLimit || v > highLimit {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		s.LowerFence = math.Min(s.LowerFence, v)
		s.UpperFence = math.Max(s.UpperFence, v)
	}

	half := notchFactor * iqr / math.Sqrt(float64(s.N))
	s.NotchLow = s.Median - half
	s.NotchHigh = s.Median + half
	return s, true
}

// quantile interpolates linearly between the closest ranks (numpy's default).
func quantile(p float64, sorted []float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

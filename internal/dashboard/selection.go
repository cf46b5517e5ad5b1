package dashboard

import (
	"sort"
	"strings"
)

// RevealKey names one boolean toggle that exposes a grouped table.
type RevealKey string

const (
	RevealGender             RevealKey = "gender"
	RevealNationality        RevealKey = "nationality"
	RevealDegree             RevealKey = "degree"
	RevealQuarter            RevealKey = "quarter"
	RevealQuarterGender      RevealKey = "quarter-gender"
	RevealQuarterNationality RevealKey = "quarter-nationality"
	RevealQuarterDegree      RevealKey = "quarter-degree"
	RevealDegreeGender       RevealKey = "degree-gender"
	RevealDegreeQuarter      RevealKey = "degree-quarter"
)

// AllRevealKeys lists every toggle the dashboard can show.
func AllRevealKeys() []RevealKey {
	return []RevealKey{
		RevealGender,
		RevealNationality,
		RevealDegree,
		RevealQuarter,
		RevealQuarterGender,
		RevealQuarterNationality,
		RevealQuarterDegree,
		RevealDegreeGender,
		RevealDegreeQuarter,
	}
}

// ParseRevealKey reports whether value names a known toggle.
func ParseRevealKey(value string) (RevealKey, bool) {
	v := RevealKey(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range AllRevealKeys() {
		if k == v {
			return k, true
		}
	}
	return "", false
}

// Selection is the complete interactive state of one render.
type Selection struct {
	Chart   ChartType
	Reveals map[RevealKey]bool
}

// NewSelection builds a selection with the given toggles switched on.
func NewSelection(chart ChartType, reveals ...RevealKey) Selection {
	sel := Selection{Chart: chart, Reveals: make(map[RevealKey]bool, len(reveals))}
	for _, k := range reveals {
		sel.Reveals[k] = true
	}
	return sel
}

// ParseSelection reads the chart option and the names of the toggles that are
// on. Unknown toggle names are ignored.
func ParseSelection(chart string, reveals []string) (Selection, error) {
	c, err := ParseChartType(chart)
	if err != nil {
		return Selection{}, err
	}
	sel := NewSelection(c)
	for _, raw := range reveals {
		for _, part := range strings.Split(raw, ",") {
			if k, ok := ParseRevealKey(part); ok {
				sel.Reveals[k] = true
			}
		}
	}
	return sel, nil
}

// Revealed reports whether the toggle is on.
func (s Selection) Revealed(k RevealKey) bool {
	return s.Reveals[k]
}

// With returns a copy of the selection with one toggle set.
func (s Selection) With(k RevealKey, on bool) Selection {
	next := Selection{Chart: s.Chart, Reveals: make(map[RevealKey]bool, len(s.Reveals)+1)}
	for key, v := range s.Reveals {
		next.Reveals[key] = v
	}
	next.Reveals[k] = on
	return next
}

// RevealList returns the toggles that are on, sorted.
func (s Selection) RevealList() []string {
	var keys []string
	for k, on := range s.Reveals {
		if on {
			keys = append(keys, string(k))
		}
	}
	sort.Strings(keys)
	return keys
}

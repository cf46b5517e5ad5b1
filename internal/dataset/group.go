package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/quarter"
)

// Table is a grouped-mean view: one row per distinct combination of the
// grouping columns, with the mean unemployment rate of the matching rows.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}

// Row holds the group key values, in Table.Columns order, and their mean.
type Row struct {
	Keys []string `json:"keys" yaml:"keys"`
	Mean float64  `json:"mean" yaml:"mean"`
}

// Lookup returns the mean for the given key values.
func (t Table) Lookup(keys ...string) (float64, bool) {
	for _, row := range t.Rows {
		if equalKeys(row.Keys, keys) {
			return row.Mean, true
		}
	}
	return 0, false
}

// Means returns the mean column in row order.
func (t Table) Means() []float64 {
	means := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		means[i] = row.Mean
	}
	return means
}

// KeyColumns returns the grouping columns.
func (t Table) KeyColumns() []string {
	if len(t.Columns) == 0 {
		return nil
	}
	return t.Columns[:len(t.Columns)-1]
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// GroupedMean averages the unemployment rate over each distinct combination
// of the given categorical columns. Rows are ordered by the columns in the
// order given, each column using its display order.
func (d *Dataset) GroupedMean(columns ...string) (Table, error) {
	if len(columns) == 0 {
		return Table{}, fmt.Errorf("grouped mean requires at least one column")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if !isCategory(col) {
			return Table{}, fmt.Errorf("cannot group by %q: not a categorical column", col)
		}
		if _, dup := seen[col]; dup {
			return Table{}, fmt.Errorf("cannot group by %q twice", col)
		}
		seen[col] = struct{}{}
	}

	agg := d.frame.GroupBy(columns...).Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_MEAN},
		[]string{constants.ColumnRate},
	)
	if agg.Err != nil {
		return Table{}, fmt.Errorf("failed to aggregate by %s: %w", strings.Join(columns, ", "), agg.Err)
	}

	meanColumn := ""
	for _, name := range agg.Names() {
		if _, isKey := seen[name]; !isKey {
			meanColumn = name
			break
		}
	}
	if meanColumn == "" {
		return Table{}, fmt.Errorf("aggregation by %s produced no mean column", strings.Join(columns, ", "))
	}

	keyValues := make([][]string, len(columns))
	for i, col := range columns {
		keyValues[i] = agg.Col(col).Records()
	}
	means := agg.Col(meanColumn).Float()

	rows := make([]Row, agg.Nrow())
	for i := range rows {
		keys := make([]string, len(columns))
		for j := range columns {
			keys[j] = keyValues[j][i]
		}
		rows[i] = Row{Keys: keys, Mean: means[i]}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for k, col := range columns {
			a, b := rows[i].Keys[k], rows[j].Keys[k]
			if a == b {
				continue
			}
			return lessValue(col, a, b)
		}
		return false
	})

	return Table{
		Columns: append(append([]string(nil), columns...), constants.ColumnRate),
		Rows:    rows,
	}, nil
}

func isCategory(column string) bool {
	for _, c := range constants.CategoryColumns {
		if c == column {
			return true
		}
	}
	return false
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return -1
}

func degreeRank(v string) int {
	return indexOf(constants.DegreeLevels, v)
}

// lessValue orders two values of the same column for display: degree levels
// by education order, nationalities Saudi first, quarters chronologically and
// anything else lexically. Unranked values sort after ranked ones.
func lessValue(column, a, b string) bool {
	var order []string
	switch column {
	case constants.ColumnDegreeLevel:
		order = constants.DegreeLevels
	case constants.ColumnNationality:
		order = constants.Nationalities
	case constants.ColumnGender:
		order = constants.Genders
	case constants.ColumnYearQuarter:
		return quarter.Less(a, b)
	default:
		return a < b
	}

	ra, rb := indexOf(order, a), indexOf(order, b)
	switch {
	case ra >= 0 && rb >= 0:
		return ra < rb
	case ra >= 0:
		return true
	case rb >= 0:
		return false
	}
	return a < b
}

func sortValues(column string, values []string) {
	sort.SliceStable(values, func(i, j int) bool { return lessValue(column, values[i], values[j]) })
}

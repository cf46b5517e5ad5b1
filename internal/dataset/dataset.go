// Package dataset loads the unemployment-rate table and derives read-only
// grouped views of it.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/quarter"
)

// ErrSchema is returned when the source file does not have the expected
// columns or contains values that cannot be interpreted.
var ErrSchema = errors.New("dataset schema mismatch")

// Record is one row of the source table.
type Record struct {
	Gender      string  `json:"gender" yaml:"gender"`
	Nationality string  `json:"nationality" yaml:"nationality"`
	DegreeLevel string  `json:"degreeLevel" yaml:"degreeLevel"`
	YearQuarter string  `json:"yearQuarter" yaml:"yearQuarter"`
	Rate        float64 `json:"unemploymentRate" yaml:"unemploymentRate"`
}

// Value returns the categorical value stored under a column name.
func (r Record) Value(column string) (string, bool) {
	switch column {
	case constants.ColumnGender:
		return r.Gender, true
	case constants.ColumnNationality:
		return r.Nationality, true
	case constants.ColumnDegreeLevel:
		return r.DegreeLevel, true
	case constants.ColumnYearQuarter:
		return r.YearQuarter, true
	}
	return "", false
}

// Dataset is the in-memory table. It is never mutated after Load returns and
// is safe for concurrent readers.
type Dataset struct {
	frame   dataframe.DataFrame
	records []Record
	csv     []byte
}

var columnTypes = map[string]series.Type{
	constants.ColumnGender:      series.String,
	constants.ColumnNationality: series.String,
	constants.ColumnDegreeLevel: series.String,
	constants.ColumnYearQuarter: series.String,
	constants.ColumnRate:        series.Float,
}

// Load reads the dataset CSV at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadReader reads a dataset CSV with a header row. Columns are matched by
// name, so any column order is accepted; extra columns are dropped.
func LoadReader(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: failed to parse CSV: %v", ErrSchema, df.Err)
	}

	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}

	df = df.Select(constants.Columns)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to select columns: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrSchema)
	}

	records, err := toRecords(df)
	if err != nil {
		return nil, err
	}
	// Grouping and the download read the frame, so it must carry the same
	// trimmed values as the records.
	df = toFrame(records)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build data frame: %w", df.Err)
	}

	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode dataset as CSV: %w", err)
	}

	return &Dataset{frame: df, records: records, csv: buf.Bytes()}, nil
}

func missingColumns(names []string) []string {
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}
	var missing []string
	for _, col := range constants.Columns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func toRecords(df dataframe.DataFrame) ([]Record, error) {
	genders := df.Col(constants.ColumnGender).Records()
	nationalities := df.Col(constants.ColumnNationality).Records()
	degrees := df.Col(constants.ColumnDegreeLevel).Records()
	quarters := df.Col(constants.ColumnYearQuarter).Records()
	rates := df.Col(constants.ColumnRate).Float()

	records := make([]Record, df.Nrow())
	for i := range records {
		// Row numbers are reported 1-based after the header line.
		line := i + 2
		rec := Record{
			Gender:      strings.TrimSpace(genders[i]),
			Nationality: strings.TrimSpace(nationalities[i]),
			DegreeLevel: strings.TrimSpace(degrees[i]),
			YearQuarter: strings.TrimSpace(quarters[i]),
			Rate:        rates[i],
		}
		if rec.Gender == "" || rec.Nationality == "" || rec.DegreeLevel == "" || rec.YearQuarter == "" {
			return nil, fmt.Errorf("%w: empty category on line %d", ErrSchema, line)
		}
		if math.IsNaN(rec.Rate) || math.IsInf(rec.Rate, 0) {
			return nil, fmt.Errorf("%w: invalid unemployment rate on line %d", ErrSchema, line)
		}
		if degreeRank(rec.DegreeLevel) < 0 {
			return nil, fmt.Errorf("%w: unknown degree level %q on line %d", ErrSchema, rec.DegreeLevel, line)
		}
		if _, err := quarter.Parse(rec.YearQuarter); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSchema, line, err)
		}
		records[i] = rec
	}
	return records, nil
}

func toFrame(records []Record) dataframe.DataFrame {
	genders := make([]string, len(records))
	nationalities := make([]string, len(records))
	degrees := make([]string, len(records))
	quarters := make([]string, len(records))
	rates := make([]float64, len(records))
	for i, rec := range records {
		genders[i] = rec.Gender
		nationalities[i] = rec.Nationality
		degrees[i] = rec.DegreeLevel
		quarters[i] = rec.YearQuarter
		rates[i] = rec.Rate
	}
	return dataframe.New(
		series.New(genders, series.String, constants.ColumnGender),
		series.New(nationalities, series.String, constants.ColumnNationality),
		series.New(degrees, series.String, constants.ColumnDegreeLevel),
		series.New(quarters, series.String, constants.ColumnYearQuarter),
		series.New(rates, series.Float, constants.ColumnRate),
	)
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Columns returns the column names in canonical order.
func (d *Dataset) Columns() []string {
	return d.frame.Names()
}

// Records returns a copy of the rows in file order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Frame returns a copy of the underlying data frame.
func (d *Dataset) Frame() dataframe.DataFrame {
	return d.frame.Copy()
}

// CSV returns the dataset re-encoded as comma-separated values. The encoding
// is produced once at load time; callers must not modify the returned slice.
func (d *Dataset) CSV() []byte {
	return d.csv
}

// Rates returns every unemployment rate, optionally restricted to the rows
// where column equals value. An empty column selects all rows.
func (d *Dataset) Rates(column, value string) []float64 {
	var rates []float64
	for _, rec := range d.records {
		if column != "" {
			if v, _ := rec.Value(column); v != value {
				continue
			}
		}
		rates = append(rates, rec.Rate)
	}
	return rates
}

// Where returns the rows matching every column=value pair of filter.
func (d *Dataset) Where(filter map[string]string) []Record {
	var out []Record
	for _, rec := range d.records {
		match := true
		for col, want := range filter {
			if v, ok := rec.Value(col); !ok || v != want {
				match = false
				break
			}
		}
		if match {
			out = append(out, rec)
		}
	}
	return out
}

// FilterQuarter returns the rows of one year quarter.
func (d *Dataset) FilterQuarter(q string) []Record {
	return d.Where(map[string]string{constants.ColumnYearQuarter: q})
}

// Values returns the distinct values of a categorical column in display order.
func (d *Dataset) Values(column string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, rec := range d.records {
		v, ok := rec.Value(column)
		if !ok {
			return nil
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sortValues(column, values)
	return values
}

// Quarters returns the distinct year quarters in chronological order.
func (d *Dataset) Quarters() []string {
	return d.Values(constants.ColumnYearQuarter)
}

// DegreeLevels returns the degree levels present, in canonical order.
func (d *Dataset) DegreeLevels() []string {
	return d.Values(constants.ColumnDegreeLevel)
}

// Genders returns the genders present.
func (d *Dataset) Genders() []string {
	return d.Values(constants.ColumnGender)
}

// Nationalities returns the nationalities present, Saudi first.
func (d *Dataset) Nationalities() []string {
	return d.Values(constants.ColumnNationality)
}

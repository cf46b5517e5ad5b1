package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadReader(bytes.NewReader(testutil.SyntheticCSV()))
	require.NoError(t, err)
	return ds
}

func TestLoadFixture(t *testing.T) {
	ds := loadFixture(t)

	assert.Equal(t, constants.ExpectedRows, ds.Len())
	assert.Equal(t, constants.Columns, ds.Columns())
	assert.Equal(t, constants.DegreeLevels, ds.DegreeLevels())
	assert.Equal(t, []string{"Saudi", "NonSaudi"}, ds.Nationalities())
	assert.Equal(t, []string{"Female", "Male"}, ds.Genders())

	quarters := ds.Quarters()
	require.Len(t, quarters, 18)
	assert.Equal(t, "2017 Q1", quarters[0])
	assert.Equal(t, "2021 Q2", quarters[17])
}

func TestLoadBundledTestdata(t *testing.T) {
	ds, err := Load(filepath.Join("..", "..", "testdata", "unemployment_rates.csv"))
	require.NoError(t, err)
	assert.Equal(t, constants.ExpectedRows, ds.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestLoadTrimsPaddedCategories(t *testing.T) {
	csv := "Gender,Nationality,Degree Level,Year Quarter,Unemployment Rate\n" +
		"Male ,Saudi,Master,2017 Q1,2\n" +
		"Male, Saudi ,Master,2017 Q1,4\n" +
		"Female,Saudi,Master ,2017 Q1,10\n"

	ds, err := LoadReader(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"Female", "Male"}, ds.Genders())

	table, err := ds.GroupedMean(constants.ColumnGender)
	require.NoError(t, err)
	require.Len(t, table.Rows, len(ds.Genders()))
	male, ok := table.Lookup("Male")
	require.True(t, ok)
	assert.InDelta(t, 3.0, male, 1e-9)

	byNationality, err := ds.GroupedMean(constants.ColumnNationality)
	require.NoError(t, err)
	assert.Len(t, byNationality.Rows, 1)

	assert.NotContains(t, string(ds.CSV()), "Male ")
	assert.NotContains(t, string(ds.CSV()), " Saudi")
	assert.Equal(t, 3, ds.Frame().Nrow())
}

func TestLoadAcceptsAnyColumnOrder(t *testing.T) {
	csv := "Unemployment Rate,Year Quarter,Degree Level,Nationality,Gender,Extra\n" +
		"5.5,2017 Q1,Master,Saudi,Male,x\n" +
		"7.5,2017 Q2,Master,Saudi,Female,y\n"

	ds, err := LoadReader(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, constants.Columns, ds.Columns())

	records := ds.Records()
	require.Len(t, records, 2)
	assert.Equal(t, Record{Gender: "Male", Nationality: "Saudi", DegreeLevel: "Master", YearQuarter: "2017 Q1", Rate: 5.5}, records[0])
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "Missing column",
			csv:  "Gender,Nationality,Degree Level,Unemployment Rate\nMale,Saudi,Master,5\n",
		},
		{
			name: "No rows",
			csv:  "Gender,Nationality,Degree Level,Year Quarter,Unemployment Rate\n",
		},
		{
			name: "Bad rate",
			csv:  "Gender,Nationality,Degree Level,Year Quarter,Unemployment Rate\nMale,Saudi,Master,2017 Q1,n/a\n",
		},
		{
			name: "Empty category",
			csv:  "Gender,Nationality,Degree Level,Year Quarter,Unemployment Rate\n,Saudi,Master,2017 Q1,5\n",
		},
		{
			name: "Unknown degree",
			csv:  "Gender,Nationality,Degree Level,Year Quarter,Unemployment Rate\nMale,Saudi,Kindergarten,2017 Q1,5\n",
		},
		{
			name: "Bad quarter",
			csv:  "Gender,Nationality,Degree Level,Year Quarter,Unemployment Rate\nMale,Saudi,Master,sometime,5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema), "expected ErrSchema, got %v", err)
		})
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	ds := loadFixture(t)
	records := ds.Records()
	records[0].Rate = -1

	assert.NotEqual(t, -1.0, ds.Records()[0].Rate)
}

func TestWhereAndRates(t *testing.T) {
	ds := loadFixture(t)

	q1 := ds.Where(map[string]string{constants.ColumnYearQuarter: "2017 Q1"})
	assert.Len(t, q1, 28)
	assert.Equal(t, q1, ds.FilterQuarter("2017 Q1"))
	assert.Empty(t, ds.FilterQuarter("2030 Q1"))

	female := ds.Rates(constants.ColumnGender, "Female")
	assert.Len(t, female, constants.ExpectedRows/2)
	assert.Len(t, ds.Rates("", ""), constants.ExpectedRows)
}

func TestCSVRoundTrip(t *testing.T) {
	ds := loadFixture(t)

	again, err := LoadReader(bytes.NewReader(ds.CSV()))
	require.NoError(t, err)

	assert.Equal(t, constants.ExpectedRows, again.Len())
	assert.Equal(t, ds.Columns(), again.Columns())

	header := strings.SplitN(string(ds.CSV()), "\n", 2)[0]
	assert.Equal(t, strings.Join(constants.Columns, ","), strings.TrimSpace(header))

	original, reparsed := ds.Records(), again.Records()
	for i := range original {
		assert.Equal(t, original[i].Gender, reparsed[i].Gender)
		assert.Equal(t, original[i].YearQuarter, reparsed[i].YearQuarter)
		assert.InDelta(t, original[i].Rate, reparsed[i].Rate, 1e-6)
	}
}

func TestXLSX(t *testing.T) {
	ds := loadFixture(t)

	data, err := ds.XLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, constants.ExpectedRows+1)
	assert.Equal(t, constants.Columns, rows[0])
}

func TestArrowIPC(t *testing.T) {
	ds := loadFixture(t)

	data, err := ds.ArrowIPC()
	require.NoError(t, err)

	reader, err := ipc.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer reader.Release()

	require.True(t, reader.Next())
	record := reader.Record()
	assert.Equal(t, int64(constants.ExpectedRows), record.NumRows())
	assert.True(t, record.Schema().Equal(ArrowSchema()))

	degrees := record.Column(2).(*array.String)
	assert.Equal(t, ds.Records()[0].DegreeLevel, degrees.Value(0))
}

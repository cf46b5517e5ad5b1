package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/unemployment-dashboard/internal/config"
	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testdataCSV = "../../testdata/unemployment_rates.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--log-level", "error",
		"--dataset", testdataCSV,
	}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCSV(t *testing.T) {
	out, err := run(t, "report", "--chart", "bar", "--output-format", "csv")
	require.NoError(t, err)

	assert.Contains(t, out, "# Grouped Data by Gender\nGender,Unemployment Rate\nFemale,")
	assert.Contains(t, out, "# Grouped Data by Nationality\nNationality,Unemployment Rate\nSaudi,")
	assert.Contains(t, out, "# Grouped Data by Degree Level\nDegree Level,Unemployment Rate\nPrimary,")
}

func TestReportJSONAllCharts(t *testing.T) {
	out, err := run(t, "report", "--output-format", "json")
	require.NoError(t, err)

	var tables []output.NamedTable
	require.NoError(t, json.Unmarshal([]byte(out), &tables))
	// Three bar, four line and two stacked bar tables; box plots have none.
	assert.Len(t, tables, 9)
}

func TestReportBoxPlotHasNoTables(t *testing.T) {
	out, err := run(t, "report", "--chart", "box-plot", "--output-format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestReportRejectsBadInput(t *testing.T) {
	_, err := run(t, "report", "--chart", "pie")
	assert.Error(t, err)

	_, err = run(t, "report", "--output-format", "xml")
	assert.Error(t, err)
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "rates.csv")
	_, err := run(t, "export", "--format", "csv", "--out", csvPath)
	require.NoError(t, err)
	ds, err := dataset.Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, constants.ExpectedRows, ds.Len())

	xlsxPath := filepath.Join(dir, "nested", "rates.xlsx")
	_, err = run(t, "export", "--format", "XLSX", "-o", xlsxPath)
	require.NoError(t, err)
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Len(t, rows, constants.ExpectedRows+1)

	arrowPath := filepath.Join(dir, "rates.arrow")
	_, err = run(t, "export", "--format", "arrow", "--out", arrowPath)
	require.NoError(t, err)
	info, err := os.Stat(arrowPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, "export", "--format", "parquet")
	assert.Error(t, err)
}

func TestDefaultExportName(t *testing.T) {
	assert.Equal(t, "Unemployment Rates in Saudi Arabia.csv", defaultExportName("csv"))
	assert.True(t, strings.HasSuffix(defaultExportName("xlsx"), ".xlsx"))
	assert.True(t, strings.HasSuffix(defaultExportName("arrow"), ".arrow"))
}

func TestMissingDatasetFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"report",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--log-level", "error",
		"--dataset", filepath.Join(t.TempDir(), "absent.csv"),
	})
	assert.Error(t, cmd.Execute())
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		override  string
		expectErr bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{}},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", cfg: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "invalid level", cfg: config.LoggingConfig{Level: "trace"}, expectErr: true},
		{name: "invalid format", cfg: config.LoggingConfig{Format: "xml"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.cfg, tt.override)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dashboard.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

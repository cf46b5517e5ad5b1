// Package constants provides shared constants for the unemployment dashboard.
package constants

// Dataset column names as they appear in the source CSV header.
const (
	ColumnGender      = "Gender"
	ColumnNationality = "Nationality"
	ColumnDegreeLevel = "Degree Level"
	ColumnYearQuarter = "Year Quarter"
	ColumnRate        = "Unemployment Rate"
)

// Columns lists the dataset columns in canonical order.
var Columns = []string{
	ColumnGender,
	ColumnNationality,
	ColumnDegreeLevel,
	ColumnYearQuarter,
	ColumnRate,
}

// CategoryColumns are the columns a grouped mean may be computed over.
var CategoryColumns = []string{
	ColumnGender,
	ColumnNationality,
	ColumnDegreeLevel,
	ColumnYearQuarter,
}

// DegreeLevels is the fixed display order of the education levels.
var DegreeLevels = []string{
	"Primary",
	"Intermediate",
	"Secondary",
	"Bachelor",
	"Diploma",
	"Master",
	"Doctorate",
}

// Nationalities is the fixed display order of the nationality series.
var Nationalities = []string{"Saudi", "NonSaudi"}

// Genders is the display order of the gender series.
var Genders = []string{"Female", "Male"}

// Dataset shape of the bundled source file.
const (
	ExpectedRows    = 504
	ExpectedColumns = 5
)

// Download artifacts
const (
	// DownloadFileName is the fixed name offered for the CSV download
	DownloadFileName = "Unemployment Rates in Saudi Arabia.csv"

	// DownloadXLSXFileName is the name offered for the spreadsheet download
	DownloadXLSXFileName = "Unemployment Rates in Saudi Arabia.xlsx"

	// DownloadArrowFileName is the name offered for the Arrow IPC download
	DownloadArrowFileName = "Unemployment Rates in Saudi Arabia.arrow"

	// ContentTypeCSV is the content label of the CSV download
	ContentTypeCSV = "text/csv"

	// ContentTypeXLSX is the content label of the spreadsheet download
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// ContentTypeArrow is the content label of the Arrow IPC stream download
	ContentTypeArrow = "application/vnd.apache.arrow.stream"
)

// Chart styling
const (
	// AnimatedRateMax is the fixed upper bound of the animated bar chart y axis
	AnimatedRateMax = 80.0

	// TimeAxisTickAngle is the rotation of quarter labels on time axes
	TimeAxisTickAngle = 30.0

	// DefaultChartWidth and DefaultChartHeight size rendered SVG charts in pixels
	DefaultChartWidth  = 1024
	DefaultChartHeight = 420
)

// Series colors, as hex RGB without the leading '#'.
const (
	ColorDeepPink = "ff1493"
	ColorDarkBlue = "00008b"
	ColorRed      = "ff0000"
	ColorGreen    = "008000"
)

// DegreePalette colors the degree levels in display order.
var DegreePalette = []string{
	"636efa",
	"ef553b",
	"00cc96",
	"ab63fa",
	"ffa15a",
	"19d3f3",
	"ff6692",
}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Export format constants
const (
	ExportFormatCSV   = "csv"
	ExportFormatXLSX  = "xlsx"
	ExportFormatArrow = "arrow"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultDatasetPath is the file name the source dataset is published under
	DefaultDatasetPath = "Unemployment Rates by Education in Saudi Arabia.csv"

	// EnvPrefix prefixes environment variable overrides, e.g. DASHBOARD_SERVER_ADDRESS
	EnvPrefix = "DASHBOARD"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultReadTimeoutSeconds bounds reading a request
	DefaultReadTimeoutSeconds = 10

	// DefaultWriteTimeoutSeconds bounds writing a response
	DefaultWriteTimeoutSeconds = 30

	// DefaultRateBurst is the burst allowed per client when rate limiting is on
	DefaultRateBurst = 20
)


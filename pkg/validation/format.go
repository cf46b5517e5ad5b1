// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
)

// OutputFormats lists the report formats in the order they are documented.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatYAML,
}

// ExportFormats lists the dataset export formats.
var ExportFormats = []string{
	constants.ExportFormatCSV,
	constants.ExportFormatXLSX,
	constants.ExportFormatArrow,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	return oneOf("output format", format, OutputFormats)
}

// ValidateExportFormat checks if the export format is one of the supported formats.
func ValidateExportFormat(format string) error {
	return oneOf("export format", format, ExportFormats)
}

func oneOf(what, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("expected %s of %s, got %q", what, strings.Join(allowed, ", "), value)
}

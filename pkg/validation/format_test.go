package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Valid json format",
			format:    "json",
			expectErr: false,
		},
		{
			name:      "Valid yaml format",
			format:    "yaml",
			expectErr: false,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "Export format is not an output format",
			format:    "xlsx",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestValidateExportFormat(t *testing.T) {
	for _, format := range []string{"csv", "xlsx", "arrow"} {
		if err := ValidateExportFormat(format); err != nil {
			t.Errorf("ValidateExportFormat(%q) unexpected error: %v", format, err)
		}
	}
	for _, format := range []string{"", "json", "parquet", "XLSX"} {
		if err := ValidateExportFormat(format); err == nil {
			t.Errorf("ValidateExportFormat(%q) expected error but got none", format)
		}
	}
}

func TestValidateOutputFormatMessage(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `expected output format of pretty, csv, json, yaml, got "xml"`
	if err.Error() != want {
		t.Errorf("unexpected message %q, want %q", err.Error(), want)
	}
}

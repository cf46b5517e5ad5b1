// Package output provides utilities for formatting and displaying grouped
// unemployment rate tables.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// NamedTable is a grouped table with the heading it is reported under.
type NamedTable struct {
	Title string        `json:"title" yaml:"title"`
	Table dataset.Table `json:"table" yaml:"table"`
}

// Write outputs the tables in the given format.
func Write(w io.Writer, format string, tables []NamedTable) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, tables)
	case constants.OutputFormatCSV:
		return CsvFormat(w, tables)
	case constants.OutputFormatJSON:
		return JSONFormat(w, tables)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, tables)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, tables []NamedTable) error {
	p := message.NewPrinter(language.English)
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- %s ---\n", t.Title); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader(t.Table.Columns)
		table.SetAutoFormatHeaders(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, row := range t.Table.Rows {
			cells := append(append([]string(nil), row.Keys...), p.Sprintf("%.2f", row.Mean))
			table.Append(cells)
		}
		table.Render()
	}
	return nil
}

// CsvFormat outputs in comma-separated value format. Each table is preceded
// by a comment line carrying its title and separated by a blank line.
func CsvFormat(w io.Writer, tables []NamedTable) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %s\n", t.Title); err != nil {
			return err
		}

		cw := csv.NewWriter(w)
		if err := cw.Write(t.Table.Columns); err != nil {
			return err
		}
		for _, row := range t.Table.Rows {
			record := append(append([]string(nil), row.Keys...), strconv.FormatFloat(row.Mean, 'f', -1, 64))
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat outputs the tables as an indented JSON array.
func JSONFormat(w io.Writer, tables []NamedTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nonNil(tables))
}

// YAMLFormat outputs the tables as a YAML sequence.
func YAMLFormat(w io.Writer, tables []NamedTable) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(tables)); err != nil {
		return err
	}
	return enc.Close()
}

func nonNil(tables []NamedTable) []NamedTable {
	if tables == nil {
		return []NamedTable{}
	}
	return tables
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full dataset as csv, xlsx or arrow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if err := validation.ValidateExportFormat(format); err != nil {
				return err
			}
			if out == "" {
				out = defaultExportName(format)
			}

			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			data, err := encode(ds, format)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create export directory %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write export %s: %w", out, err)
			}

			a.logger.Info("dataset exported",
				zap.String("op", "export"),
				zap.String("format", format),
				zap.String("path", out),
				zap.Int("bytes", len(data)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", constants.ExportFormatCSV, "export format: csv, xlsx, arrow")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: the download file name for the format)")
	return cmd
}

func encode(ds *dataset.Dataset, format string) ([]byte, error) {
	switch format {
	case constants.ExportFormatCSV:
		return ds.CSV(), nil
	case constants.ExportFormatXLSX:
		return ds.XLSX()
	case constants.ExportFormatArrow:
		return ds.ArrowIPC()
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

func defaultExportName(format string) string {
	switch format {
	case constants.ExportFormatXLSX:
		return constants.DownloadXLSXFileName
	case constants.ExportFormatArrow:
		return constants.DownloadArrowFileName
	}
	return constants.DownloadFileName
}

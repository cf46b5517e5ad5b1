package main

import (
	"fmt"

	"github.com/iwvelando/unemployment-dashboard/internal/dashboard"
	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/output"
	"github.com/iwvelando/unemployment-dashboard/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(a *app) *cobra.Command {
	var chart string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the grouped tables behind the charts of a chart type",
		Long: "Print the grouped mean tables that the dashboard reveals under its charts. " +
			"Without --chart every chart type is reported.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := a.conf.Output.Format
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			charts := dashboard.AllChartTypes()
			if chart != "" {
				c, err := dashboard.ParseChartType(chart)
				if err != nil {
					return err
				}
				charts = []dashboard.ChartType{c}
			}

			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			tables, err := reportTables(ds, charts)
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				a.logger.Info("selected charts have no grouped tables",
					zap.String("op", "report"),
					zap.String("chart", chart),
				)
			}
			return output.Write(cmd.OutOrStdout(), format, tables)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&chart, "chart", "", "chart type to report: bar, stacked-bar, line, box-plot")
	flags.String("output-format", "", "type of output override: pretty, csv, json, yaml")
	_ = a.v.BindPFlag("output.format", flags.Lookup("output-format"))
	return cmd
}

// reportTables builds each chart type with every toggle on and collects the
// revealed tables in page order.
func reportTables(ds *dataset.Dataset, charts []dashboard.ChartType) ([]output.NamedTable, error) {
	var tables []output.NamedTable
	for _, c := range charts {
		page, err := dashboard.Build(ds, dashboard.NewSelection(c, dashboard.AllRevealKeys()...))
		if err != nil {
			return nil, fmt.Errorf("failed to build %s charts: %w", c, err)
		}
		for _, s := range page.Sections {
			if s.Reveal == nil || s.Reveal.Table == nil {
				continue
			}
			tables = append(tables, output.NamedTable{Title: s.Reveal.Heading, Table: *s.Reveal.Table})
		}
	}
	return tables, nil
}

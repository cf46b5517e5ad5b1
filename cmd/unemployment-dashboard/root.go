package main

import (
	"fmt"

	"github.com/iwvelando/unemployment-dashboard/internal/config"
	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the root command
// has loaded the configuration.
type app struct {
	v          *viper.Viper
	configPath string
	logLevel   string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "unemployment-dashboard",
		Short:         "Explore Saudi Arabia unemployment rates by gender, nationality and education",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.String("dataset", "", "path to the unemployment rates CSV (overrides config)")
	_ = a.v.BindPFlag("dataset.path", flags.Lookup("dataset"))

	root.AddCommand(newServeCmd(a), newReportCmd(a), newExportCmd(a))
	return root
}

// load reads the configuration, starts the logger and reports configuration
// warnings. Flags bound to the viper instance override file and environment.
func (a *app) load() error {
	conf, err := config.Load(a.v, a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if conf.Source == "" {
		logger.Debug("no configuration file found, using defaults",
			zap.String("op", "main"),
			zap.String("config", a.configPath),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return nil
}

func (a *app) loadDataset() (*dataset.Dataset, error) {
	ds, err := dataset.Load(a.conf.Dataset.Path)
	if err != nil {
		return nil, err
	}
	a.logger.Info("dataset loaded",
		zap.String("op", "main"),
		zap.String("path", a.conf.Dataset.Path),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns())),
	)
	return ds, nil
}

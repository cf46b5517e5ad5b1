// Package config defines the configuration of the dashboard and loads it from
// a YAML file, environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the dashboard.
type Configuration struct {
	Dataset DatasetConfig `yaml:"dataset,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`

	// Source is the file the configuration was read from, empty when only
	// defaults and overrides apply.
	Source string `yaml:"-" mapstructure:"-"`
}

// DatasetConfig locates the source CSV.
type DatasetConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds the HTTP server options
type ServerConfig struct {
	Address      string        `yaml:"address,omitempty"`
	ReadTimeout  time.Duration `yaml:"readTimeout,omitempty"`
	WriteTimeout time.Duration `yaml:"writeTimeout,omitempty"`
	RateLimit    float64       `yaml:"rateLimit,omitempty"` // requests per second per client, 0 disables
	RateBurst    int           `yaml:"rateBurst,omitempty"`
	Gzip         bool          `yaml:"gzip,omitempty"`
	ChartWidth   int           `yaml:"chartWidth,omitempty"`
	ChartHeight  int           `yaml:"chartHeight,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, yaml
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset.path", constants.DefaultDatasetPath)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.readTimeout", constants.DefaultReadTimeoutSeconds*time.Second)
	v.SetDefault("server.writeTimeout", constants.DefaultWriteTimeoutSeconds*time.Second)
	v.SetDefault("server.rateLimit", 0.0)
	v.SetDefault("server.rateBurst", constants.DefaultRateBurst)
	v.SetDefault("server.gzip", true)
	v.SetDefault("server.chartWidth", constants.DefaultChartWidth)
	v.SetDefault("server.chartHeight", constants.DefaultChartHeight)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	return Load(viper.New(), configPath)
}

// Load reads the configuration through v, which may already carry bound
// command line flags. Environment variables prefixed with DASHBOARD_ override
// the file, e.g. DASHBOARD_SERVER_ADDRESS.
func Load(v *viper.Viper, configPath string) (*Configuration, error) {
	SetDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := ""
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
			source = configPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.Source = source

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if strings.TrimSpace(c.Dataset.Path) == "" {
		warnings = append(warnings, "Dataset path is empty - the dashboard has nothing to load")
	}
	if err := validation.ValidateListenAddress(c.Server.Address); err != nil {
		warnings = append(warnings, err.Error())
	}
	warnings = append(warnings, validation.ValidateTimeouts(c.Server.ReadTimeout, c.Server.WriteTimeout)...)
	warnings = append(warnings, validation.ValidateRateLimit(c.Server.RateLimit, c.Server.RateBurst)...)
	if c.Server.ChartWidth < 0 || c.Server.ChartHeight < 0 {
		warnings = append(warnings, fmt.Sprintf("Chart size %dx%d is negative - the default size will be used",
			c.Server.ChartWidth, c.Server.ChartHeight))
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	return warnings
}

package server

import (
	"strings"

	"github.com/iwvelando/unemployment-dashboard/internal/config"
	"github.com/iwvelando/unemployment-dashboard/internal/render"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
)

// Options defines runtime parameters for the HTTP handler.
type Options struct {
	Version string

	// RateLimit is the sustained requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64
	RateBurst int

	Gzip bool

	Chart render.Options
}

// OptionsFromConfig maps the server section of the application configuration.
func OptionsFromConfig(cfg config.ServerConfig, version string) Options {
	return Options{
		Version:   version,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Gzip:      cfg.Gzip,
		Chart: render.Options{
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
		},
	}
}

func (o Options) normalize() Options {
	o.Version = strings.TrimSpace(o.Version)
	if o.Version == "" {
		o.Version = "dev"
	}
	if o.RateLimit < 0 {
		o.RateLimit = 0
	}
	if o.RateLimit > 0 && o.RateBurst <= 0 {
		o.RateBurst = constants.DefaultRateBurst
	}
	if o.Chart.Width <= 0 {
		o.Chart.Width = constants.DefaultChartWidth
	}
	if o.Chart.Height <= 0 {
		o.Chart.Height = constants.DefaultChartHeight
	}
	return o
}

// Package render draws dashboard chart descriptions as SVG documents.
package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/iwvelando/unemployment-dashboard/internal/dashboard"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyChart is returned when a chart has nothing to draw.
var ErrEmptyChart = errors.New("chart has no data")

// Options sizes the rendered chart. Zero values fall back to the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = constants.DefaultChartWidth
	}
	if o.Height <= 0 {
		o.Height = constants.DefaultChartHeight
	}
	return o
}

// SVG renders a chart. Animated charts render their first frame.
func SVG(spec dashboard.ChartSpec, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var (
		buf bytes.Buffer
		err error
	)
	switch spec.Kind {
	case dashboard.KindBar:
		err = barSVG(&buf, spec, opts)
	case dashboard.KindAnimatedBar:
		return FrameSVG(spec, 0, opts)
	case dashboard.KindStackedBar:
		err = stackedBarSVG(&buf, spec, opts)
	case dashboard.KindLine:
		err = lineSVG(&buf, spec, opts)
	case dashboard.KindBox:
		err = boxSVG(&buf, spec, opts)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}
	return buf.Bytes(), nil
}

// FrameSVG renders one frame of an animated bar chart.
func FrameSVG(spec dashboard.ChartSpec, frame int, opts Options) ([]byte, error) {
	if spec.Kind != dashboard.KindAnimatedBar {
		return nil, fmt.Errorf("chart kind %q has no frames", spec.Kind)
	}
	if len(spec.Frames) == 0 {
		return nil, ErrEmptyChart
	}
	if frame < 0 || frame >= len(spec.Frames) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", frame, len(spec.Frames))
	}

	f := spec.Frames[frame]
	single := spec
	single.Kind = dashboard.KindBar
	single.Series = []dashboard.Series{{Name: spec.YTitle, Values: f.Values}}

	var buf bytes.Buffer
	title := fmt.Sprintf("%s = %s", spec.FrameTitle, f.Label)
	if err := barChart(&buf, single, opts, title); err != nil {
		return nil, fmt.Errorf("failed to render frame %s: %w", f.Label, err)
	}
	return buf.Bytes(), nil
}

// color parses a hex color, falling back to the first palette entry.
func color(hex string, index int) drawing.Color {
	if hex == "" {
		hex = constants.DegreePalette[index%len(constants.DegreePalette)]
	}
	return drawing.ColorFromHex(hex)
}

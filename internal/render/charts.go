package render

import (
	"io"

	"github.com/iwvelando/unemployment-dashboard/internal/dashboard"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	barSpacing = 8
	minBarSize = 8
	maxBarSize = 80
	axisMargin = 160
	linePoints = 3
)

var background = chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}}

func barSVG(w io.Writer, spec dashboard.ChartSpec, opts Options) error {
	return barChart(w, spec, opts, "")
}

// barChart draws the first series of spec as one colored bar per category.
func barChart(w io.Writer, spec dashboard.ChartSpec, opts Options, title string) error {
	if len(spec.Series) == 0 || len(spec.Categories) == 0 {
		return ErrEmptyChart
	}
	values := spec.Series[0].Values

	bars := make([]chart.Value, len(spec.Categories))
	for i, category := range spec.Categories {
		var v float64
		if i < len(values) {
			v = values[i]
		}
		hex := spec.Series[0].Color
		if i < len(spec.CategoryColors) {
			hex = spec.CategoryColors[i]
		}
		c := color(hex, i)
		bars[i] = chart.Value{
			Label: category,
			Value: v,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}

	yAxis := chart.YAxis{Name: spec.YTitle}
	if spec.YRange != nil {
		yAxis.Range = &chart.ContinuousRange{Min: spec.YRange.Min, Max: spec.YRange.Max}
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background,
		BarWidth:   barWidth(opts.Width, len(bars)),
		BarSpacing: barSpacing,
		XAxis:      chart.Style{TextRotationDegrees: spec.TickAngle},
		YAxis:      yAxis,
		Bars:       bars,
	}
	return bc.Render(chart.SVG, w)
}

// stackedBarSVG stacks one segment per series on each category.
func stackedBarSVG(w io.Writer, spec dashboard.ChartSpec, opts Options) error {
	if len(spec.Series) == 0 || len(spec.Categories) == 0 {
		return ErrEmptyChart
	}

	width := barWidth(opts.Width, len(spec.Categories))
	bars := make([]chart.StackedBar, len(spec.Categories))
	for i, category := range spec.Categories {
		segments := make([]chart.Value, 0, len(spec.Series))
		for j, s := range spec.Series {
			if i >= len(s.Values) {
				continue
			}
			c := color(s.Color, j)
			segments = append(segments, chart.Value{
				Label: s.Name,
				Value: s.Values[i],
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
		bars[i] = chart.StackedBar{Name: category, Width: width, Values: segments}
	}

	sbc := chart.StackedBarChart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{TextRotationDegrees: spec.TickAngle},
		Bars:       bars,
	}
	return sbc.Render(chart.SVG, w)
}

// lineSVG draws one line per series over the category positions, labelled
// with the category names.
func lineSVG(w io.Writer, spec dashboard.ChartSpec, opts Options) error {
	if len(spec.Series) == 0 || len(spec.Categories) == 0 {
		return ErrEmptyChart
	}

	xs := make([]float64, len(spec.Categories))
	ticks := make([]chart.Tick, len(spec.Categories))
	for i, category := range spec.Categories {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: category}
	}
	maxX := xs[len(xs)-1]
	if maxX == 0 {
		maxX = 1
	}

	series := make([]chart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		ys := make([]float64, len(xs))
		copy(ys, s.Values)
		c := color(s.Color, i)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    linePoints,
			},
		})
	}

	ch := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background,
		XAxis: chart.XAxis{
			Name:      spec.XTitle,
			Ticks:     ticks,
			Range:     &chart.ContinuousRange{Min: 0, Max: maxX},
			TickStyle: chart.Style{TextRotationDegrees: spec.TickAngle},
		},
		YAxis:  chart.YAxis{Name: spec.YTitle},
		Series: series,
	}
	if spec.ShowLegend {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(chart.SVG, w)
}

func barWidth(total, n int) int {
	if n == 0 {
		return minBarSize
	}
	w := (total-axisMargin)/n - barSpacing
	switch {
	case w < minBarSize:
		return minBarSize
	case w > maxBarSize:
		return maxBarSize
	}
	return w
}

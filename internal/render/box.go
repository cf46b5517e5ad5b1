package render

import (
	"io"

	"github.com/iwvelando/unemployment-dashboard/internal/dashboard"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	boxWidth      = 40
	splitBoxWidth = 28
	notchHalf     = 0.12
	splitOffset   = 0.2
	boxFillAlpha  = 150
)

// boxSVG draws one box per dashboard box, placed on its group's position.
// Boxes sharing a group are spread side by side and told apart by a legend.
func boxSVG(w io.Writer, spec dashboard.ChartSpec, opts Options) error {
	if len(spec.Boxes) == 0 {
		return ErrEmptyChart
	}

	groups := spec.Groups
	if len(groups) == 0 {
		groups = []string{spec.Boxes[0].Name}
	}
	position := make(map[string]int, len(groups))
	for i, g := range groups {
		position[g] = i
	}
	perGroup := make(map[string]int)
	for _, b := range spec.Boxes {
		perGroup[b.Group]++
	}

	p := plot.New()
	p.X.Label.Text = spec.XTitle
	p.Y.Label.Text = spec.YTitle

	seen := make(map[string]int)
	legend := make(map[string]bool)
	for i, b := range spec.Boxes {
		loc := float64(position[b.Group])
		width := vg.Points(boxWidth)
		if n := perGroup[b.Group]; n > 1 {
			k := seen[b.Group]
			seen[b.Group]++
			loc += splitOffset * (2*float64(k)/float64(n-1) - 1)
			width = vg.Points(splitBoxWidth)
		}

		bp, err := boxPlot(b, loc, width)
		if err != nil {
			return err
		}
		c := color(b.Color, i)
		bp.FillColor = c.WithAlpha(boxFillAlpha)
		bp.BoxStyle.Color = c
		bp.WhiskerStyle.Color = c
		bp.GlyphStyle.Color = c
		p.Add(bp)

		if !spec.Notched && !spec.ShowLegend {
			continue
		}
		notch, err := plotter.NewLine(plotter.XYs{
			{X: loc - notchHalf, Y: b.NotchLow},
			{X: loc, Y: b.Median},
			{X: loc + notchHalf, Y: b.NotchLow},
			{X: loc + notchHalf, Y: b.NotchHigh},
			{X: loc, Y: b.Median},
			{X: loc - notchHalf, Y: b.NotchHigh},
			{X: loc - notchHalf, Y: b.NotchLow},
		})
		if err != nil {
			return err
		}
		notch.LineStyle.Color = c
		notch.LineStyle.Width = vg.Points(1)
		if spec.Notched {
			p.Add(notch)
		}
		if spec.ShowLegend && !legend[b.Name] {
			legend[b.Name] = true
			p.Legend.Add(b.Name, notch)
		}
	}
	p.NominalX(groups...)
	p.Legend.Top = true

	px := vg.Inch / 96
	wt, err := p.WriterTo(vg.Length(opts.Width)*px, vg.Length(opts.Height)*px, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// boxPlot builds a gonum box from the dashboard summary. gonum estimates
// quartiles with a different rule, so its statistics are replaced.
func boxPlot(b dashboard.Box, loc float64, width vg.Length) (*plotter.BoxPlot, error) {
	values := plotter.Values{b.LowerFence, b.Q1, b.Median, b.Q3, b.UpperFence}
	values = append(values, b.Outliers...)

	bp, err := plotter.NewBoxPlot(width, loc, values)
	if err != nil {
		return nil, err
	}
	bp.Median = b.Median
	bp.Quartile1 = b.Q1
	bp.Quartile3 = b.Q3
	bp.AdjLow = b.LowerFence
	bp.AdjHigh = b.UpperFence
	bp.Min = b.Min
	bp.Max = b.Max
	bp.Outside = bp.Outside[:0]
	for i := 5; i < len(values); i++ {
		bp.Outside = append(bp.Outside, i)
	}
	return bp, nil
}

package dashboard

import (
	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/mathutil"
)

// ChartKind selects how a ChartSpec is drawn.
type ChartKind string

const (
	KindBar         ChartKind = "bar"
	KindStackedBar  ChartKind = "stacked-bar"
	KindLine        ChartKind = "line"
	KindBox         ChartKind = "box"
	KindAnimatedBar ChartKind = "animated-bar"
)

// Page is everything one render of the dashboard shows, in display order.
type Page struct {
	Title      string           `json:"title"`
	Intro      []string         `json:"intro"`
	Dimensions string           `json:"dimensions"`
	Sidebar    []string         `json:"sidebar"`
	Lead       string           `json:"lead"`
	Chart      ChartType        `json:"chart"`
	Options    []Option         `json:"options"`
	Columns    []string         `json:"columns"`
	Records    []dataset.Record `json:"records,omitempty"`
	Download   Download         `json:"download"`
	Sections   []Section        `json:"sections"`
}

// Option is one entry of the chart type selector.
type Option struct {
	Label    string `json:"label"`
	Slug     string `json:"slug"`
	Selected bool   `json:"selected"`
}

// Download describes the raw data download control.
type Download struct {
	Label       string `json:"label"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// Section is one chart with its heading, optional explanation and optional
// grouped-table toggle.
type Section struct {
	ID      string    `json:"id"`
	Heading string    `json:"heading"`
	Caption string    `json:"caption,omitempty"`
	Chart   ChartSpec `json:"chart"`
	Reveal  *Reveal   `json:"reveal,omitempty"`
}

// Reveal is a toggle-gated grouped table. Table is set only when Visible.
type Reveal struct {
	Key     RevealKey      `json:"key"`
	Label   string         `json:"label"`
	Heading string         `json:"heading"`
	Visible bool           `json:"visible"`
	Table   *dataset.Table `json:"table,omitempty"`
}

// ChartSpec is a renderer-independent chart description.
//
// For bar charts Series holds a single series aligned with Categories and
// CategoryColors colors each bar. Stacked bar and line charts hold one series
// per group, aligned with Categories. Animated bar charts hold one frame per
// time label. Box charts hold Boxes.
type ChartSpec struct {
	Kind           ChartKind `json:"kind"`
	XTitle         string    `json:"xTitle,omitempty"`
	YTitle         string    `json:"yTitle"`
	Categories     []string  `json:"categories,omitempty"`
	CategoryColors []string  `json:"categoryColors,omitempty"`
	Series         []Series  `json:"series,omitempty"`
	Frames         []Frame   `json:"frames,omitempty"`
	FrameTitle     string    `json:"frameTitle,omitempty"`
	Boxes          []Box     `json:"boxes,omitempty"`
	Groups         []string  `json:"groups,omitempty"`
	YRange         *Range    `json:"yRange,omitempty"`
	Notched        bool      `json:"notched,omitempty"`
	ShowLegend     bool      `json:"showLegend"`
	TickAngle      float64   `json:"tickAngle,omitempty"`
}

// Series is one named, colored sequence of values.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// Frame is one step of an animated chart.
type Frame struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Range is a fixed axis range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Box is one box of a box plot. Group is the x category the box sits in;
// Name distinguishes boxes sharing a category.
type Box struct {
	Name  string `json:"name"`
	Group string `json:"group"`
	Color string `json:"color"`
	mathutil.BoxStats
}

// Section returns the section with the given id.
func (p Page) Section(id string) (Section, bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// SectionIDs lists the section ids in display order.
func (p Page) SectionIDs() []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.ID
	}
	return ids
}

// VisibleTables counts the sections whose grouped table is shown.
func (p Page) VisibleTables() int {
	n := 0
	for _, s := range p.Sections {
		if s.Reveal != nil && s.Reveal.Visible {
			n++
		}
	}
	return n
}

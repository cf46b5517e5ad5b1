// Package dashboard turns the dataset and the viewer's selection into a
// declarative description of the page: header content, the full table, and
// the ordered chart sections of the selected chart type.
package dashboard

import (
	"fmt"
	"strings"
)

// ChartType is the single selection control of the dashboard.
type ChartType int

const (
	ChartBar ChartType = iota
	ChartStackedBar
	ChartLine
	ChartBoxPlot
)

// DefaultChartType is preselected when the viewer has not chosen one.
const DefaultChartType = ChartBar

var chartTypeNames = []struct {
	label string
	slug  string
}{
	ChartBar:        {label: "Bar", slug: "bar"},
	ChartStackedBar: {label: "Stacked Bar", slug: "stacked-bar"},
	ChartLine:       {label: "Line", slug: "line"},
	ChartBoxPlot:    {label: "Box Plot", slug: "box-plot"},
}

// AllChartTypes lists the options in the order the selector offers them.
func AllChartTypes() []ChartType {
	return []ChartType{ChartBar, ChartStackedBar, ChartLine, ChartBoxPlot}
}

func (c ChartType) valid() bool {
	return c >= ChartBar && c <= ChartBoxPlot
}

// String returns the option label shown to the viewer.
func (c ChartType) String() string {
	if !c.valid() {
		return fmt.Sprintf("ChartType(%d)", int(c))
	}
	return chartTypeNames[c].label
}

// Slug returns the URL-safe identifier of the option.
func (c ChartType) Slug() string {
	if !c.valid() {
		return ""
	}
	return chartTypeNames[c].slug
}

// ParseChartType accepts an option label or slug, case-insensitively.
// An empty value selects DefaultChartType.
func ParseChartType(value string) (ChartType, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return DefaultChartType, nil
	}
	for _, c := range AllChartTypes() {
		if v == c.Slug() || v == strings.ToLower(c.String()) {
			return c, nil
		}
	}
	return DefaultChartType, fmt.Errorf("unknown chart type %q", value)
}

// MarshalText encodes the chart type as its slug.
func (c ChartType) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("invalid chart type %d", int(c))
	}
	return []byte(c.Slug()), nil
}

// UnmarshalText decodes a label or slug.
func (c *ChartType) UnmarshalText(text []byte) error {
	parsed, err := ParseChartType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

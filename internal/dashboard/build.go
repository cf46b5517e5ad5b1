package dashboard

import (
	"errors"
	"fmt"

	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/mathutil"
)

// Build describes the dashboard for one selection. It only reads the
// dataset, and the same dataset and selection always yield the same page.
func Build(ds *dataset.Dataset, sel Selection) (Page, error) {
	if ds == nil {
		return Page{}, errors.New("dashboard requires a dataset")
	}

	b := newBuilder(ds, sel)
	page := b.header()

	var (
		sections []Section
		err      error
	)
	switch sel.Chart {
	case ChartBar:
		sections, err = b.barSections()
	case ChartStackedBar:
		sections, err = b.stackedBarSections()
	case ChartLine:
		sections, err = b.lineSections()
	case ChartBoxPlot:
		sections, err = b.boxSections()
	default:
		return Page{}, fmt.Errorf("unknown chart type %v", sel.Chart)
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to build %s charts: %w", sel.Chart, err)
	}

	page.Sections = sections
	return page, nil
}

type builder struct {
	ds      *dataset.Dataset
	sel     Selection
	period  string
	reveals map[RevealKey]revealText
}

func newBuilder(ds *dataset.Dataset, sel Selection) *builder {
	period := "the first and last quarter"
	if quarters := ds.Quarters(); len(quarters) > 0 {
		period = fmt.Sprintf("%s and %s", quarters[0], quarters[len(quarters)-1])
	}
	return &builder{ds: ds, sel: sel, period: period, reveals: revealTexts(period)}
}

func (b *builder) header() Page {
	options := make([]Option, 0, 4)
	for _, c := range AllChartTypes() {
		options = append(options, Option{Label: c.String(), Slug: c.Slug(), Selected: c == b.sel.Chart})
	}

	return Page{
		Title: pageTitle,
		Intro: []string{introSource},
		Dimensions: fmt.Sprintf("The dataset's dimensions are as follows: %d rows x %d columns",
			b.ds.Len(), len(b.ds.Columns())),
		Sidebar: []string{sidebarIntro, selectLabel, sidebarScroll},
		Lead:    leadText,
		Chart:   b.sel.Chart,
		Options: options,
		Columns: b.ds.Columns(),
		Records: b.ds.Records(),
		Download: Download{
			Label:       downloadLabel,
			FileName:    constants.DownloadFileName,
			ContentType: constants.ContentTypeCSV,
		},
	}
}

// grouped computes the grouped mean once and hands it to both the chart
// builder and, when toggled on, the reveal.
func (b *builder) grouped(id, heading, caption string, key RevealKey, columns []string, chart func(dataset.Table) ChartSpec) (Section, error) {
	table, err := b.ds.GroupedMean(columns...)
	if err != nil {
		return Section{}, fmt.Errorf("section %s: %w", id, err)
	}

	section := Section{ID: id, Heading: heading, Caption: caption, Chart: chart(table)}
	if key != "" {
		text := b.reveals[key]
		reveal := &Reveal{Key: key, Label: text.label, Heading: text.heading, Visible: b.sel.Revealed(key)}
		if reveal.Visible {
			t := table
			reveal.Table = &t
		}
		section.Reveal = reveal
	}
	return section, nil
}

func (b *builder) barSections() ([]Section, error) {
	gender, err := b.grouped("bar-gender",
		"Bar Graph Showing the Average of Unemployment Rate by Gender",
		captionBarGender, RevealGender,
		[]string{constants.ColumnGender}, barChart(constants.ColumnGender))
	if err != nil {
		return nil, err
	}

	nationality, err := b.grouped("bar-nationality",
		"Bar Graph Showing the Average of Unemployment Rate by Nationality",
		captionBarNationality, RevealNationality,
		[]string{constants.ColumnNationality}, barChart(constants.ColumnNationality))
	if err != nil {
		return nil, err
	}

	degree, err := b.grouped("bar-degree",
		"Bar Graph Showing the Average of Unemployment Rate by Degree Level",
		captionBarDegree, RevealDegree,
		[]string{constants.ColumnDegreeLevel}, barChart(constants.ColumnDegreeLevel))
	if err != nil {
		return nil, err
	}

	animated := Section{
		ID:      "bar-degree-animated",
		Heading: "Interactive Bar Graph Showing the Change in the Sum of Unemployment Rate by Degree Level Over Time",
		Chart:   b.animatedDegreeChart(),
	}

	return []Section{gender, nationality, degree, animated}, nil
}

func barChart(column string) func(dataset.Table) ChartSpec {
	return func(t dataset.Table) ChartSpec {
		categories := make([]string, len(t.Rows))
		colors := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			categories[i] = row.Keys[0]
			colors[i] = colorFor(column, row.Keys[0], i)
		}
		return ChartSpec{
			Kind:           KindBar,
			XTitle:         column,
			YTitle:         constants.ColumnRate,
			Categories:     categories,
			CategoryColors: colors,
			Series:         []Series{{Name: constants.ColumnRate, Values: t.Means()}},
		}
	}
}

// animatedDegreeChart has one frame per quarter. Each bar is the sum of the
// rates of every row for that degree level and quarter.
func (b *builder) animatedDegreeChart() ChartSpec {
	degrees := b.ds.DegreeLevels()
	colors := make([]string, len(degrees))
	for i, d := range degrees {
		colors[i] = colorFor(constants.ColumnDegreeLevel, d, i)
	}

	quarters := b.ds.Quarters()
	frames := make([]Frame, len(quarters))
	for i, q := range quarters {
		values := make([]float64, len(degrees))
		for _, r := range b.ds.FilterQuarter(q) {
			for j, d := range degrees {
				if r.DegreeLevel == d {
					values[j] += r.Rate
					break
				}
			}
		}
		frames[i] = Frame{Label: q, Values: values}
	}

	return ChartSpec{
		Kind:           KindAnimatedBar,
		XTitle:         constants.ColumnDegreeLevel,
		YTitle:         constants.ColumnRate,
		Categories:     degrees,
		CategoryColors: colors,
		Frames:         frames,
		FrameTitle:     constants.ColumnYearQuarter,
		YRange:         &Range{Min: 0, Max: constants.AnimatedRateMax},
	}
}

func (b *builder) lineSections() ([]Section, error) {
	overall, err := b.grouped("line-overall",
		fmt.Sprintf("Line Graph Showing the Unemployment Rate Between %s", b.period),
		captionLineOverall, RevealQuarter,
		[]string{constants.ColumnYearQuarter},
		func(t dataset.Table) ChartSpec {
			categories := make([]string, len(t.Rows))
			for i, row := range t.Rows {
				categories[i] = row.Keys[0]
			}
			return ChartSpec{
				Kind:       KindLine,
				XTitle:     constants.ColumnYearQuarter,
				YTitle:     constants.ColumnRate,
				Categories: categories,
				Series:     []Series{{Name: constants.ColumnRate, Color: constants.ColorRed, Values: t.Means()}},
				TickAngle:  constants.TimeAxisTickAngle,
			}
		})
	if err != nil {
		return nil, err
	}

	gender, err := b.grouped("line-gender",
		fmt.Sprintf("Line Graph Showing the Average of Unemployment Rate by Gender Between %s", b.period),
		captionLineGender, RevealQuarterGender,
		[]string{constants.ColumnGender, constants.ColumnYearQuarter},
		b.pivotChart(KindLine, constants.ColumnGender, constants.ColumnYearQuarter))
	if err != nil {
		return nil, err
	}

	nationality, err := b.grouped("line-nationality",
		fmt.Sprintf("Line Graph Showing the Average of Unemployment Rate by Nationality Between %s", b.period),
		captionLineNationality, RevealQuarterNationality,
		[]string{constants.ColumnNationality, constants.ColumnYearQuarter},
		b.pivotChart(KindLine, constants.ColumnNationality, constants.ColumnYearQuarter))
	if err != nil {
		return nil, err
	}

	degree, err := b.grouped("line-degree",
		fmt.Sprintf("Line Graph Showing the Average of Unemployment Rate by Degree Level Between %s", b.period),
		"", RevealQuarterDegree,
		[]string{constants.ColumnDegreeLevel, constants.ColumnYearQuarter},
		b.pivotChart(KindLine, constants.ColumnDegreeLevel, constants.ColumnYearQuarter))
	if err != nil {
		return nil, err
	}

	return []Section{overall, gender, nationality, degree}, nil
}

func (b *builder) stackedBarSections() ([]Section, error) {
	degreeGender, err := b.grouped("stacked-degree-gender",
		"Bar Graph Showing the Average of Unemployment Rate by Degree Level and Gender",
		"", RevealDegreeGender,
		[]string{constants.ColumnGender, constants.ColumnDegreeLevel},
		b.pivotChart(KindStackedBar, constants.ColumnGender, constants.ColumnDegreeLevel))
	if err != nil {
		return nil, err
	}

	degreeQuarter, err := b.grouped("stacked-degree-quarter",
		fmt.Sprintf("Bar Graph Showing the Average of Unemployment Rate by Degree Level Between %s", b.period),
		"", RevealDegreeQuarter,
		[]string{constants.ColumnDegreeLevel, constants.ColumnYearQuarter},
		b.pivotChart(KindStackedBar, constants.ColumnDegreeLevel, constants.ColumnYearQuarter))
	if err != nil {
		return nil, err
	}

	return []Section{degreeGender, degreeQuarter}, nil
}

// pivotChart spreads a two-column grouped table into one series per value of
// seriesColumn, aligned with the values of categoryColumn.
func (b *builder) pivotChart(kind ChartKind, seriesColumn, categoryColumn string) func(dataset.Table) ChartSpec {
	return func(t dataset.Table) ChartSpec {
		seriesNames := b.ds.Values(seriesColumn)
		categories := b.ds.Values(categoryColumn)

		seriesIdx, categoryIdx := columnIndex(t, seriesColumn), columnIndex(t, categoryColumn)
		series := make([]Series, len(seriesNames))
		for i, name := range seriesNames {
			values := make([]float64, len(categories))
			for j, category := range categories {
				for _, row := range t.Rows {
					if row.Keys[seriesIdx] == name && row.Keys[categoryIdx] == category {
						values[j] = row.Mean
						break
					}
				}
			}
			series[i] = Series{Name: name, Color: colorFor(seriesColumn, name, i), Values: values}
		}

		spec := ChartSpec{
			Kind:       kind,
			XTitle:     categoryColumn,
			YTitle:     constants.ColumnRate,
			Categories: categories,
			Series:     series,
			ShowLegend: true,
		}
		if categoryColumn == constants.ColumnYearQuarter {
			spec.TickAngle = constants.TimeAxisTickAngle
		}
		return spec
	}
}

func columnIndex(t dataset.Table, column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

func (b *builder) boxSections() ([]Section, error) {
	overall := Section{
		ID:      "box-overall",
		Heading: "Box Plot of the Unemployment Rate",
		Chart: ChartSpec{
			Kind:   KindBox,
			YTitle: constants.ColumnRate,
			Boxes:  b.boxes("", "", "", constants.DegreePalette[0]),
		},
	}

	nationality := Section{
		ID:      "box-nationality",
		Heading: "Box Plot of the Unemployment Rate by Nationality",
		Chart:   b.categoryBoxChart(constants.ColumnNationality),
	}

	gender := Section{
		ID:      "box-gender",
		Heading: "Box Plot of the Unemployment Rate by Gender",
		Chart:   b.categoryBoxChart(constants.ColumnGender),
	}

	var split []Box
	for _, n := range b.ds.Nationalities() {
		for i, g := range b.ds.Genders() {
			rows := b.ds.Where(map[string]string{
				constants.ColumnNationality: n,
				constants.ColumnGender:      g,
			})
			rates := make([]float64, len(rows))
			for k, r := range rows {
				rates[k] = r.Rate
			}
			if stats, ok := mathutil.Summarize(rates); ok {
				split = append(split, Box{Name: g, Group: n, Color: colorFor(constants.ColumnGender, g, i), BoxStats: stats})
			}
		}
	}
	nationalityGender := Section{
		ID:      "box-nationality-gender",
		Heading: "Box Plot of the Unemployment Rate by Nationality and Gender",
		Chart: ChartSpec{
			Kind:       KindBox,
			XTitle:     constants.ColumnNationality,
			YTitle:     constants.ColumnRate,
			Groups:     b.ds.Nationalities(),
			Boxes:      split,
			Notched:    true,
			ShowLegend: true,
		},
	}

	if len(overall.Chart.Boxes) == 0 {
		return nil, errors.New("no rates to summarize")
	}
	return []Section{overall, nationality, gender, nationalityGender}, nil
}

func (b *builder) categoryBoxChart(column string) ChartSpec {
	values := b.ds.Values(column)
	var boxes []Box
	for i, v := range values {
		boxes = append(boxes, b.boxes(column, v, v, colorFor(column, v, i))...)
	}
	return ChartSpec{
		Kind:    KindBox,
		XTitle:  column,
		YTitle:  constants.ColumnRate,
		Groups:  values,
		Boxes:   boxes,
		Notched: true,
	}
}

// boxes summarizes the rates where column equals value; an empty column
// summarizes every row.
func (b *builder) boxes(column, value, name, color string) []Box {
	stats, ok := mathutil.Summarize(b.ds.Rates(column, value))
	if !ok {
		return nil
	}
	if name == "" {
		name = constants.ColumnRate
	}
	return []Box{{Name: name, Group: value, Color: color, BoxStats: stats}}
}

func colorFor(column, value string, index int) string {
	switch column {
	case constants.ColumnGender:
		switch value {
		case "Female":
			return constants.ColorDeepPink
		case "Male":
			return constants.ColorDarkBlue
		}
	case constants.ColumnNationality:
		switch value {
		case "Saudi":
			return constants.ColorRed
		case "NonSaudi":
			return constants.ColorGreen
		}
	case constants.ColumnDegreeLevel:
		for i, d := range constants.DegreeLevels {
			if d == value {
				return constants.DegreePalette[i%len(constants.DegreePalette)]
			}
		}
	}
	return constants.DegreePalette[index%len(constants.DegreePalette)]
}

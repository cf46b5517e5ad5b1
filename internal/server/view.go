package server

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/iwvelando/unemployment-dashboard/internal/dashboard"
	"github.com/iwvelando/unemployment-dashboard/pkg/format"
)

var templateFuncs = template.FuncMap{
	"rate": format.Rate,
	"hex":  func(c string) template.CSS { return template.CSS("#" + c) },
}

type pageView struct {
	dashboard.Page
	Version  string
	Sections []sectionView
}

type sectionView struct {
	dashboard.Section
	ImageURL string
	Legend   []legendEntry
	Frames   []frameLink
}

type legendEntry struct {
	Name  string
	Color string
}

type frameLink struct {
	Label   string
	URL     string
	Current bool
}

func newPageView(page dashboard.Page, query url.Values, frame int, version string) pageView {
	base := chartQuery(query)
	view := pageView{Page: page, Version: version}
	for _, s := range page.Sections {
		view.Sections = append(view.Sections, newSectionView(s, base, frame))
	}
	return view
}

func newSectionView(s dashboard.Section, base url.Values, frame int) sectionView {
	v := sectionView{Section: s}

	q := cloneValues(base)
	if s.Chart.Kind == dashboard.KindAnimatedBar && len(s.Chart.Frames) > 0 {
		if frame >= len(s.Chart.Frames) {
			frame = 0
		}
		q.Set(queryFrame, strconv.Itoa(frame))
		for i, f := range s.Chart.Frames {
			link := cloneValues(base)
			link.Set(queryFrame, strconv.Itoa(i))
			v.Frames = append(v.Frames, frameLink{
				Label:   f.Label,
				URL:     fmt.Sprintf("/?%s#%s", link.Encode(), s.ID),
				Current: i == frame,
			})
		}
	}
	v.ImageURL = fmt.Sprintf("/charts/%s?%s", url.PathEscape(s.ID), q.Encode())

	// go-chart has no legend for stacked bars, so the page draws one.
	if s.Chart.Kind == dashboard.KindStackedBar && s.Chart.ShowLegend {
		for _, series := range s.Chart.Series {
			v.Legend = append(v.Legend, legendEntry{Name: series.Name, Color: series.Color})
		}
	}
	return v
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

package server

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iwvelando/unemployment-dashboard/internal/dashboard"
	"github.com/iwvelando/unemployment-dashboard/internal/render"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const (
	queryChart = "chart"
	queryShow  = "show"
	queryFrame = "frame"
	queryBy    = "by"
)

// selection reads the chart type and the reveal toggles from the query.
func selection(r *http.Request) (dashboard.Selection, error) {
	q := r.URL.Query()
	return dashboard.ParseSelection(q.Get(queryChart), q[queryShow])
}

func frameIndex(r *http.Request) (int, error) {
	raw := r.URL.Query().Get(queryFrame)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid frame %q", raw)
	}
	return n, nil
}

func (h *handler) buildPage(w http.ResponseWriter, r *http.Request, op string) (dashboard.Page, bool) {
	sel, err := selection(r)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return dashboard.Page{}, false
	}
	page, err := dashboard.Build(h.ds, sel)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to build dashboard: %v", err), op)
		return dashboard.Page{}, false
	}
	h.metrics.renders.WithLabelValues(sel.Chart.Slug()).Inc()
	return page, true
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	const op = "server.handleDashboard"

	page, ok := h.buildPage(w, r, op)
	if !ok {
		return
	}
	frame, err := frameIndex(r)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, newPageView(page, r.URL.Query(), frame, h.opts.Version)); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render page: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.requestLog(r).Warn("failed to write page", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleDashboardJSON(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, ok := h.buildPage(w, r, "server.handleDashboardJSON")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

func (h *handler) handleGroups(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	const op = "server.handleGroups"

	by := r.URL.Query()[queryBy]
	if len(by) == 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "at least one by= column is required", op)
		return
	}
	table, err := h.ds.GroupedMean(by...)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, table)
}

func (h *handler) handleChart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	const op = "server.handleChart"

	page, ok := h.buildPage(w, r, op)
	if !ok {
		return
	}
	id := ps.ByName("section")
	section, found := page.Section(id)
	if !found {
		h.respondErrorWithOp(w, r, http.StatusNotFound,
			fmt.Sprintf("no section %q for chart type %s", id, page.Chart), op)
		return
	}

	var svg []byte
	var err error
	if section.Chart.Kind == dashboard.KindAnimatedBar {
		frame, ferr := frameIndex(r)
		if ferr != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, ferr.Error(), op)
			return
		}
		if frame >= len(section.Chart.Frames) {
			h.respondErrorWithOp(w, r, http.StatusBadRequest,
				fmt.Sprintf("frame %d out of range, %d frames", frame, len(section.Chart.Frames)), op)
			return
		}
		svg, err = render.FrameSVG(section.Chart, frame, h.opts.Chart)
	} else {
		svg, err = render.SVG(section.Chart, h.opts.Chart)
	}
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(svg); err != nil {
		h.requestLog(r).Warn("failed to write chart", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleDownloadCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.sendAttachment(w, r, constants.DownloadFileName, constants.ContentTypeCSV, h.ds.CSV(), "server.handleDownloadCSV")
}

func (h *handler) handleDownloadXLSX(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	const op = "server.handleDownloadXLSX"
	data, err := h.ds.XLSX()
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.sendAttachment(w, r, constants.DownloadXLSXFileName, constants.ContentTypeXLSX, data, op)
}

func (h *handler) handleDownloadArrow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	const op = "server.handleDownloadArrow"
	data, err := h.ds.ArrowIPC()
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.sendAttachment(w, r, constants.DownloadArrowFileName, constants.ContentTypeArrow, data, op)
}

func (h *handler) sendAttachment(w http.ResponseWriter, r *http.Request, name, contentType string, data []byte, op string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if _, err := w.Write(data); err != nil {
		h.requestLog(r).Warn("failed to write download", zap.String("op", op), zap.Error(err))
	}
}

// chartQuery keeps the chart type and toggles of the current page so that
// chart images and frame links render the same selection.
func chartQuery(q url.Values) url.Values {
	out := url.Values{}
	if c := q.Get(queryChart); c != "" {
		out.Set(queryChart, c)
	}
	for _, s := range q[queryShow] {
		out.Add(queryShow, s)
	}
	return out
}

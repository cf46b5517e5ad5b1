package server

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/iwvelando/unemployment-dashboard/pkg/constants"
	"github.com/iwvelando/unemployment-dashboard/pkg/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	ds, err := dataset.LoadReader(bytes.NewReader(testutil.SyntheticCSV()))
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	h, err := NewHandler(zap.NewNop(), ds, opts)
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNewHandlerRequiresDataset(t *testing.T) {
	if _, err := NewHandler(nil, nil, Options{}); err == nil {
		t.Fatal("expected error without dataset")
	}
}

func TestDashboardPageDefaultsToBar(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := rr.Body.String()
	for _, want := range []string{
		"Analysis of the Unemployment Rate in Saudi Arabia",
		"504 rows x 5 columns",
		`<option value="bar" selected>Bar</option>`,
		`id="bar-gender"`,
		`id="bar-degree-animated"`,
		"/charts/bar-gender?",
		"Download data as CSV",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(body, `id="line-overall"`) {
		t.Error("bar page should not contain line sections")
	}
	dims, table := strings.Index(body, "504 rows x 5 columns"), strings.Index(body, `<table class="data">`)
	if dims < 0 || table < 0 || dims > table {
		t.Errorf("expected the dimensions line before the data table (at %d and %d)", dims, table)
	}
	if strings.Contains(body, "<h3>") {
		t.Error("no grouped table should be shown by default")
	}
}

func TestDashboardPageRevealsTable(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/?chart=line&show=quarter-gender")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="line-overall"`) {
		t.Fatal("expected line sections")
	}
	if got := strings.Count(body, "<h3>"); got != 1 {
		t.Fatalf("expected exactly one grouped table, got %d", got)
	}
	if !strings.Contains(body, `value="quarter-gender" checked`) {
		t.Error("expected the toggle to stay checked")
	}
	if !strings.Contains(body, "show=quarter-gender") {
		t.Error("chart links should carry the toggles")
	}
}

func TestDashboardRejectsUnknownChart(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/api/dashboard?chart=pie")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if !strings.Contains(resp["error"], "pie") {
		t.Fatalf("unexpected error message %q", resp["error"])
	}
}

func TestDashboardJSON(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/api/dashboard?chart=box-plot")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var page struct {
		Chart    string `json:"chart"`
		Sections []struct {
			ID    string `json:"id"`
			Chart struct {
				Kind    string `json:"kind"`
				Notched bool   `json:"notched"`
			} `json:"chart"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	if page.Chart != "box-plot" {
		t.Fatalf("expected box-plot, got %q", page.Chart)
	}
	if len(page.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(page.Sections))
	}
	if page.Sections[0].Chart.Notched || !page.Sections[1].Chart.Notched {
		t.Fatal("only the split box plots are notched")
	}
}

func TestGroupsEndpoint(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/api/groups?by=Nationality&by=Year%20Quarter")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var table dataset.Table
	if err := json.Unmarshal(rr.Body.Bytes(), &table); err != nil {
		t.Fatalf("failed to decode table: %v", err)
	}
	if len(table.Rows) != 36 {
		t.Fatalf("expected 36 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].Keys[0] != "Saudi" || table.Rows[0].Keys[1] != "2017 Q1" {
		t.Fatalf("unexpected first row %v", table.Rows[0].Keys)
	}

	for _, target := range []string{"/api/groups", "/api/groups?by=Unemployment%20Rate", "/api/groups?by=Region"} {
		if rr := get(t, h, target); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", target, rr.Code)
		}
	}
}

func TestChartEndpoint(t *testing.T) {
	h := newTestHandler(t, Options{})

	tests := []struct {
		target string
		status int
	}{
		{"/charts/bar-gender", http.StatusOK},
		{"/charts/bar-degree-animated?frame=17", http.StatusOK},
		{"/charts/bar-degree-animated?frame=18", http.StatusBadRequest},
		{"/charts/bar-degree-animated?frame=x", http.StatusBadRequest},
		{"/charts/line-degree?chart=line", http.StatusOK},
		{"/charts/stacked-degree-quarter?chart=stacked-bar", http.StatusOK},
		{"/charts/box-nationality-gender?chart=box-plot", http.StatusOK},
		{"/charts/line-degree", http.StatusNotFound},
		{"/charts/nothing?chart=line", http.StatusNotFound},
	}

	for _, tt := range tests {
		rr := get(t, h, tt.target)
		if rr.Code != tt.status {
			t.Errorf("%s: expected status %d, got %d: %s", tt.target, tt.status, rr.Code, rr.Body.String())
			continue
		}
		if tt.status != http.StatusOK {
			continue
		}
		if ct := rr.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("%s: unexpected content type %q", tt.target, ct)
		}
		if !strings.Contains(rr.Body.String(), "<svg") {
			t.Errorf("%s: expected an SVG document", tt.target)
		}
	}
}

func TestDownloadCSV(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/download/csv")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != constants.ContentTypeCSV {
		t.Fatalf("unexpected content type %q", ct)
	}
	want := `attachment; filename="Unemployment Rates in Saudi Arabia.csv"`
	if cd := rr.Header().Get("Content-Disposition"); cd != want {
		t.Fatalf("unexpected disposition %q", cd)
	}

	ds, err := dataset.LoadReader(rr.Body)
	if err != nil {
		t.Fatalf("downloaded CSV does not load: %v", err)
	}
	if ds.Len() != constants.ExpectedRows {
		t.Fatalf("expected %d rows, got %d", constants.ExpectedRows, ds.Len())
	}
}

func TestDownloadXLSXAndArrow(t *testing.T) {
	h := newTestHandler(t, Options{})

	rr := get(t, h, "/download/xlsx")
	if rr.Code != http.StatusOK {
		t.Fatalf("xlsx: expected status 200, got %d", rr.Code)
	}
	f, err := excelize.OpenReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	rows, err := f.GetRows("Data")
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != constants.ExpectedRows+1 {
		t.Fatalf("expected %d sheet rows, got %d", constants.ExpectedRows+1, len(rows))
	}

	rr = get(t, h, "/download/arrow")
	if rr.Code != http.StatusOK {
		t.Fatalf("arrow: expected status 200, got %d", rr.Code)
	}
	reader, err := ipc.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to open arrow stream: %v", err)
	}
	defer reader.Release()
	var n int64
	for reader.Next() {
		n += reader.Record().NumRows()
	}
	if n != constants.ExpectedRows {
		t.Fatalf("expected %d arrow rows, got %d", constants.ExpectedRows, n)
	}
}

func TestVersionHealthAndMetrics(t *testing.T) {
	h := newTestHandler(t, Options{Version: " 1.2.3 "})

	rr := get(t, h, "/api/version")
	var version map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &version); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}
	if version["version"] != "1.2.3" {
		t.Fatalf("unexpected version %q", version["version"])
	}

	rr = get(t, h, "/healthz")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"rows":504`) {
		t.Fatalf("unexpected health response %d: %s", rr.Code, rr.Body.String())
	}

	get(t, h, "/?chart=line")
	rr = get(t, h, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`unemployment_dashboard_http_requests_total{code="200",route="/"}`,
		`unemployment_dashboard_dashboard_renders_total{chart="line"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestDefaultVersion(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/api/version")
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Fatalf("expected dev version, got %s", rr.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestHandler(t, Options{})

	rr := get(t, h, "/healthz")
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}

	id := "3f1c2a9e-6f55-4d1e-9a55-0c4d3f3ad0c1"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(requestIDHeader); got != id {
		t.Fatalf("expected request id %q to be echoed, got %q", id, got)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestStaticAssets(t *testing.T) {
	h := newTestHandler(t, Options{})
	rr := get(t, h, "/static/style.css")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}

func TestGzipResponses(t *testing.T) {
	h := newTestHandler(t, Options{Gzip: true})

	req := httptest.NewRequest(http.MethodGet, "/download/csv", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got headers %v", rr.Header())
	}
	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to open gzip body: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read gzip body: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("Gender,")) {
		t.Fatalf("unexpected body prefix %q", data[:20])
	}
}

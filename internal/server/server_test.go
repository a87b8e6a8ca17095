package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/stackgrid/pkg/cache"
	"github.com/matzehuels/stackgrid/pkg/errors"
	"github.com/matzehuels/stackgrid/pkg/observability"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
)

const demoDoc = `{
  "columns": ["20%", "auto", "auto", "20%"],
  "rows": ["15%", "auto"],
  "viewport": {"width": 800, "height": 600}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

type apiError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiError {
	t.Helper()
	var body apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want a uuid", RequestIDHeader, rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"valid uuid kept", id, true},
		{"garbage replaced", "not-a-uuid", false},
		{"missing assigned", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.keep && got != tt.header {
				t.Errorf("request id = %q, want %q", got, tt.header)
			}
			if !tt.keep && got == tt.header {
				t.Errorf("request id %q was not replaced", got)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("request id %q is not a uuid", got)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/v1/grid", demoDoc)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got struct {
		ID          string       `json:"id"`
		Width       uint32       `json:"width"`
		Height      uint32       `json:"height"`
		Columns     []string     `json:"columns"`
		Rows        []string     `json:"rows"`
		ColumnSizes []float64    `json:"column_sizes"`
		RowSizes    []float64    `json:"row_sizes"`
		Cells       [][4]float64 `json:"cells"`
		Cached      bool         `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.ID != rec.Header().Get(RequestIDHeader) {
		t.Errorf("id = %q, want request id %q", got.ID, rec.Header().Get(RequestIDHeader))
	}
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("viewport = %dx%d, want 800x600", got.Width, got.Height)
	}
	if diff := cmp.Diff([]string{"20%", "auto", "auto", "20%"}, got.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{160, 240, 240, 160}, got.ColumnSizes); diff != "" {
		t.Errorf("column sizes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{90, 510}, got.RowSizes); diff != "" {
		t.Errorf("row sizes mismatch (-want +got):\n%s", diff)
	}
	wantCells := [][4]float64{
		{0, 0, 160, 90}, {160, 0, 400, 90}, {400, 0, 640, 90}, {640, 0, 800, 90},
		{0, 90, 160, 600}, {160, 90, 400, 600}, {400, 90, 640, 600}, {640, 90, 800, 600},
	}
	if diff := cmp.Diff(wantCells, got.Cells); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
	if got.Cached {
		t.Error("first request reported cached")
	}

	rec = post(t, s, "/v1/grid", demoDoc)
	if !strings.Contains(rec.Body.String(), `"cached":true`) {
		t.Errorf("second request not served from cache: %s", rec.Body.String())
	}
}

func TestGridDefaultsTracks(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/v1/grid", `{"viewport": {"width": 100, "height": 50}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"cells":[[0,0,100,50]]`) {
		t.Errorf("body = %s, want a single full-viewport cell", rec.Body.String())
	}
}

func TestGridErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"missing viewport", "/v1/grid", `{"columns": ["auto"]}`, http.StatusBadRequest, errors.ErrCodeMissingViewport},
		{"zero viewport", "/v1/grid", `{"viewport": {"width": 0, "height": 10}}`, http.StatusBadRequest, errors.ErrCodeInvalidViewport},
		{"empty columns", "/v1/grid", `{"columns": [], "viewport": {"width": 10, "height": 10}}`, http.StatusBadRequest, errors.ErrCodeEmptyTracks},
		{"bad track", "/v1/grid", `{"columns": ["20px"], "viewport": {"width": 10, "height": 10}}`, http.StatusBadRequest, errors.ErrCodeInvalidTracks},
		{"malformed json", "/v1/grid", `{"columns":`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad palette", "/v1/grid", `{"viewport": {"width": 10, "height": 10}, "render": {"palette": ["red"]}}`, http.StatusBadRequest, errors.ErrCodeInvalidColor},
		{"strict overflow", "/v1/grid?strict=true", `{"columns": ["60%", "60%"], "viewport": {"width": 10, "height": 10}}`, http.StatusBadRequest, errors.ErrCodeInvalidTracks},
		{"bad strict flag", "/v1/grid?strict=maybe", demoDoc, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown format", "/v1/render/gif", demoDoc, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad scale", "/v1/render/png?scale=-1", demoDoc, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			body := decodeError(t, rec)
			if body.Error.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.Message == "" {
				t.Error("empty error message")
			}
			if body.Error.RequestID != rec.Header().Get(RequestIDHeader) {
				t.Errorf("error request_id = %q, header = %q", body.Error.RequestID, rec.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestGridNegativeFreeSpaceAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/v1/grid", `{"columns": ["60%", "60%", "auto"], "viewport": {"width": 100, "height": 10}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"column_sizes":[60,60,-20]`) {
		t.Errorf("body = %s, want negative auto column", rec.Body.String())
	}
}

func TestUnsupportedContentType(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/grid", strings.NewReader(demoDoc))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800 600"`},
		{"SVG", "image/svg+xml", "<path"},
		{"json", "application/json", `"column_sizes"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := post(t, s, "/v1/render/"+tt.format, demoDoc)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
			if rec.Header().Get("X-Grid-Hash") == "" {
				t.Error("missing X-Grid-Hash")
			}
		})
	}
}

func TestRenderCache(t *testing.T) {
	s := newTestServer(t)

	first := post(t, s, "/v1/render/svg", demoDoc)
	if got := first.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}
	second := post(t, s, "/v1/render/svg", demoDoc)
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from rendered body")
	}

	refreshed := post(t, s, "/v1/render/svg?refresh=true", demoDoc)
	if got := refreshed.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("refresh X-Cache = %q, want miss", got)
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v2/nothing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidTracks, http.StatusBadRequest},
		{errors.ErrCodeInvalidPath, http.StatusBadRequest},
		{errors.ErrCodeMissingViewport, http.StatusBadRequest},
		{errors.ErrCodeEmptyTracks, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeFileNotFound, http.StatusNotFound},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeNetwork, http.StatusServiceUnavailable},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHTTPHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.add("request " + method + " " + path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.add("response " + http.StatusText(status))
}

func (h *recordingHTTPHooks) OnError(_ context.Context, method, path string, err error) {
	h.add("error " + string(errors.GetCode(err)))
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	post(t, s, "/v1/grid", demoDoc)
	post(t, s, "/v1/grid", `{"columns": ["auto"]}`)

	want := []string{
		"request POST /v1/grid",
		"response OK",
		"request POST /v1/grid",
		"error MISSING_VIEWPORT",
		"response Bad Request",
	}
	if diff := cmp.Diff(want, hooks.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLogsRequestID(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	var runnerLog, serverLog strings.Builder
	runner := pipeline.NewRunner(fc, nil, log.New(&runnerLog))
	t.Cleanup(func() { runner.Close() })
	s := New(runner, log.New(&serverLog))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/v1/render/svg", strings.NewReader(demoDoc))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var line string
	for _, l := range strings.Split(serverLog.String(), "\n") {
		if strings.Contains(l, "rendered outputs") {
			line = l
		}
	}
	if line == "" {
		t.Fatalf("server log has no render line:\n%s", serverLog.String())
	}
	if !strings.Contains(line, "request_id="+id) {
		t.Errorf("render line missing request id %s: %q", id, line)
	}
	if runnerLog.Len() != 0 {
		t.Errorf("runner logger used for a request: %q", runnerLog.String())
	}
}

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stackgrid/pkg/errors"
	"github.com/matzehuels/stackgrid/pkg/grid"
	gridio "github.com/matzehuels/stackgrid/pkg/io"
	"github.com/matzehuels/stackgrid/pkg/pipeline"
)

// gridResponse is the body returned by POST /v1/grid. Columns and Rows echo
// the track specs; the resolved pixel sizes are in ColumnSizes and RowSizes.
type gridResponse struct {
	ID          string          `json:"id"`
	Width       uint32          `json:"width"`
	Height      uint32          `json:"height"`
	Columns     []grid.CellSize `json:"columns"`
	Rows        []grid.CellSize `json:"rows"`
	ColumnSizes []float64       `json:"column_sizes"`
	RowSizes    []float64       `json:"row_sizes"`
	Cells       [][4]float64    `json:"cells"`
	Cached      bool            `json:"cached"`
}

func newGridResponse(id string, g grid.Resolved, cached bool) gridResponse {
	cells := make([][4]float64, len(g.Cells))
	for i, c := range g.Cells {
		cells[i] = [4]float64{c.X1, c.Y1, c.X2, c.Y2}
	}
	return gridResponse{
		ID:          id,
		Width:       g.Viewport.Width,
		Height:      g.Viewport.Height,
		Columns:     g.Columns,
		Rows:        g.Rows,
		ColumnSizes: g.ColumnSizes,
		RowSizes:    g.RowSizes,
		Cells:       cells,
		Cached:      cached,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	opts, err := s.readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, err := pipeline.BuildLayout(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resolved, hit, err := s.runner.ResolveWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGridResponse(requestIDFrom(r.Context()), resolved, hit))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.readOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	if result.GridHash != "" {
		w.Header().Set("X-Grid-Hash", result.GridHash)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// readOptions decodes the request document and the shared query parameters.
// The API is stricter than the library: viewports must have a positive area.
func (s *Server) readOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options

	doc, err := gridio.ReadDocument(http.MaxBytesReader(w, r.Body, maxBodyBytes), gridio.FormatJSON)
	if err != nil {
		return opts, err
	}
	if err := doc.Validate(); err != nil {
		return opts, err
	}
	if doc.Viewport != nil {
		if err := errors.ValidateViewport(float64(doc.Viewport.Width), float64(doc.Viewport.Height)); err != nil {
			return opts, err
		}
	}

	opts = pipeline.OptionsFromDocument(doc)
	q := r.URL.Query()
	for name, dst := range map[string]*bool{"strict": &opts.Strict, "refresh": &opts.Refresh} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s=%q", name, v)
		}
		*dst = b
	}
	opts.Logger = s.logger.With("request_id", requestIDFrom(r.Context()))
	return opts, nil
}

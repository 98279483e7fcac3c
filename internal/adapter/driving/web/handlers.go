package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/diillson/cancer-stats-dashboard-go/internal/adapter/driven/render"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
)

// PNG size bounds, in pixels.
const (
	defaultChartWidth  = 900
	defaultChartHeight = 450
	minChartSize       = 200
	maxChartSize       = 2000
)

type pageData struct {
	Title     string
	Options   entity.FilterOptions
	Selection entity.FilterSelection
	Query     template.URL
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r.URL.Query())
	data := pageData{
		Title:     "Canadian Cancer Statistics Dashboard",
		Options:   withSelection(s.dataset.Options(), sel),
		Selection: sel,
		Query:     template.URL(selectionQuery(sel)),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.console.LogError("Failed to render page: %s", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dataset.Options())
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r.URL.Query())
	charts := s.dashboard.Charts(s.dataset, sel)

	out := make(map[entity.ChartKind]entity.Chart, len(charts))
	for _, c := range charts {
		out[c.Kind] = c
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	c, ok := s.chartFor(w, r, entity.ChartKind(r.PathValue("kind")))
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if !strings.HasSuffix(file, ".png") {
		http.NotFound(w, r)
		return
	}

	c, ok := s.chartFor(w, r, entity.ChartKind(strings.TrimSuffix(file, ".png")))
	if !ok {
		return
	}

	q := r.URL.Query()
	width := clampSize(q.Get("w"), defaultChartWidth)
	height := clampSize(q.Get("h"), defaultChartHeight)

	img, err := s.renderer.RenderPNG(c, width, height)
	if err != nil {
		s.console.LogError("Failed to render %s chart: %s", c.Kind, err)
		if img, err = render.BlankPNG(width, height); err != nil {
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(img)
}

func (s *Server) chartFor(w http.ResponseWriter, r *http.Request, kind entity.ChartKind) (entity.Chart, bool) {
	c, err := s.dashboard.Chart(s.dataset, kind, selectionFromQuery(r.URL.Query()))
	if errors.Is(err, types.ErrUnknownChartKind) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return entity.Chart{}, false
	}
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return entity.Chart{}, false
	}
	return c, true
}

// withSelection appends selected values missing from opts, so the dropdowns
// always show what the charts were built for.
func withSelection(opts entity.FilterOptions, sel entity.FilterSelection) entity.FilterOptions {
	addMissing := func(values []string, selected ...string) []string {
		for _, v := range selected {
			if v != "" && !slices.Contains(values, v) {
				values = append(values, v)
			}
		}
		return values
	}
	opts.Regions = addMissing(opts.Regions, sel.Region)
	opts.CancerTypes = addMissing(opts.CancerTypes, sel.CancerType)
	opts.Sexes = addMissing(opts.Sexes, sel.Sexes...)
	return opts
}

// selectionFromQuery reads region, cancer_type and repeated sex parameters.
// An absent parameter falls back to its default; a present but empty one
// selects nothing and yields empty series.
func selectionFromQuery(q url.Values) entity.FilterSelection {
	sel := entity.DefaultSelection()
	if q.Has("region") {
		sel.Region = q.Get("region")
	}
	if q.Has("cancer_type") {
		sel.CancerType = q.Get("cancer_type")
	}
	if q.Has("sex") {
		sel.Sexes = make([]string, 0, len(q["sex"]))
		for _, v := range q["sex"] {
			if v != "" {
				sel.Sexes = append(sel.Sexes, v)
			}
		}
	}
	return sel
}

// selectionQuery encodes sel in the form selectionFromQuery reads.
func selectionQuery(sel entity.FilterSelection) string {
	q := url.Values{}
	q.Set("region", sel.Region)
	q.Set("cancer_type", sel.CancerType)
	if len(sel.Sexes) == 0 {
		q.Set("sex", "")
	}
	for _, sex := range sel.Sexes {
		q.Add("sex", sex)
	}
	return q.Encode()
}

func clampSize(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return min(max(n, minChartSize), maxChartSize)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.console.LogError("Failed to encode response: %s", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

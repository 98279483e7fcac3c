package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"time"

	"github.com/diillson/cancer-stats-dashboard-go/internal/application/usecase"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/cancer-stats-dashboard-go/internal/shared/types"
	"github.com/diillson/cancer-stats-dashboard-go/pkg/console"
)

//go:embed templates/index.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server serves the dashboard page and the chart endpoints over a dataset
// loaded once at startup. Handlers only read the dataset, so requests run
// concurrently without locking.
type Server struct {
	addr      string
	dashboard *usecase.DashboardUseCase
	dataset   *entity.Dataset
	renderer  repository.ChartRenderer
	console   types.ConsoleInterface
	page      *template.Template
	mux       *http.ServeMux
}

// NewServer cria o servidor web do dashboard.
func NewServer(
	addr string,
	dashboard *usecase.DashboardUseCase,
	dataset *entity.Dataset,
	renderer repository.ChartRenderer,
	console types.ConsoleInterface,
) (*Server, error) {
	page, err := template.New("index.html").Funcs(template.FuncMap{
		"contains": func(values []string, v string) bool { return slices.Contains(values, v) },
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing page template: %w", err)
	}

	s := &Server{
		addr:      addr,
		dashboard: dashboard,
		dataset:   dataset,
		renderer:  renderer,
		console:   console,
		page:      page,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/options", s.handleOptions)
	s.mux.HandleFunc("GET /api/charts", s.handleCharts)
	s.mux.HandleFunc("GET /api/charts/{kind}", s.handleChart)
	s.mux.HandleFunc("GET /charts/{file}", s.handleChartPNG)
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.console.LogSuccess("Dashboard running on %s", console.BrightCyan(displayURL(s.addr)))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error running HTTP server: %w", err)
	case <-ctx.Done():
		s.console.LogInfo("Shutting down dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
		return nil
	}
}

func displayURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.console.LogInfo("%s %s %s %s", r.Method, r.URL.RequestURI(), console.StatusColor(rec.status), time.Since(start).Round(time.Microsecond))
	})
}

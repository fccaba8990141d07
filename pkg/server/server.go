// Package server exposes the tracing pipeline over HTTP.
//
// # Endpoints
//
//   - GET /healthz: liveness probe
//   - GET /fields: list the builtin vector fields
//   - GET /render: trace and render in one request
//
// The render endpoint maps query parameters onto [pipeline.Options] and
// returns the artifact with its content type, so a browser can point an
// <img> tag straight at it. Traced datasets and artifacts are served from
// the runner's cache whenever parameters repeat.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowlines/flowlines/pkg/field"
	"github.com/flowlines/flowlines/pkg/pipeline"
)

// Server handles HTTP rendering requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around a pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the chi router with the standard middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/fields", s.handleFields)
	r.Get("/render", s.handleRender)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"fields": field.BuiltinNames()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, format, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	artifact := result.Artifacts[format]
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Line-Count", itoa(result.Stats.LineCount))
	if result.CacheInfo.TraceHit && result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

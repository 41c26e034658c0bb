package server

import (
	"context"
	"net/http"
	"time"

	"github.com/aleister1102/webdiff/internal/compare"
	"github.com/aleister1102/webdiff/internal/config"
	"github.com/aleister1102/webdiff/internal/merge"
	"github.com/aleister1102/webdiff/internal/reporter"
	"github.com/aleister1102/webdiff/internal/storage"
	"github.com/aleister1102/webdiff/internal/testrunner"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Server is the stateless HTTP surface over the engines. All state lives in
// the project tree on disk.
type Server struct {
	logger    zerolog.Logger
	cfg       config.ServerConfig
	gateway   *storage.Gateway
	engine    *compare.Engine
	merger    *merge.Engine
	runner    *testrunner.Runner
	generator *reporter.Generator
	validate  *validator.Validate
	mux       *http.ServeMux
}

// NewServer wires the HTTP surface.
func NewServer(
	cfg config.ServerConfig,
	gateway *storage.Gateway,
	engine *compare.Engine,
	merger *merge.Engine,
	runner *testrunner.Runner,
	generator *reporter.Generator,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		logger:    logger.With().Str("component", "HTTPServer").Logger(),
		cfg:       cfg,
		gateway:   gateway,
		engine:    engine,
		merger:    merger,
		runner:    runner,
		generator: generator,
		validate:  validator.New(),
		mux:       http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/projects", s.handleListProjects)
	s.mux.HandleFunc("POST /api/projects", s.handleCreateProject)
	s.mux.HandleFunc("DELETE /api/projects/{project}", s.handleDeleteProject)
	s.mux.HandleFunc("GET /api/sections/{project}", s.handleListSections)
	s.mux.HandleFunc("DELETE /api/sections/{project}/{section}", s.handleDeleteSection)

	s.mux.HandleFunc("GET /api/compare/{project}/page", s.handleComparePage)
	s.mux.HandleFunc("GET /api/compare/{project}/{s1}/{s2}", s.handleCompare)

	s.mux.HandleFunc("POST /api/merge/{project}", s.handleMerge)
	s.mux.HandleFunc("POST /api/merge/{project}/preview", s.handleMergePreview)

	s.mux.HandleFunc("POST /api/test-runner/run", s.handleTestRun)
	s.mux.HandleFunc("POST /api/test-runner/run-all", s.handleTestRunAll)
	s.mux.HandleFunc("GET /api/test-runner/{project}/results", s.handleTestResults)
	s.mux.HandleFunc("GET /api/test-runner/{project}/statistics", s.handleTestStatistics)
	s.mux.HandleFunc("GET /api/test-runner/{project}/results/{id}", s.handleTestResult)
	s.mux.HandleFunc("DELETE /api/test-runner/{project}/results/{id}", s.handleTestResultDelete)

	s.mux.HandleFunc("POST /api/reports/{project}/generate", s.handleReportGenerate)
	s.mux.HandleFunc("GET /api/reports/{project}", s.handleReportList)
	s.mux.HandleFunc("GET /api/reports/{project}/{id}/download", s.handleReportDownload)
	s.mux.HandleFunc("DELETE /api/reports/{project}/{id}", s.handleReportDelete)

	s.mux.HandleFunc("GET /api/capture/preview/{project}/{section}/{screenPath...}", s.handleCapturePreview)
}

// Handler returns the routed handler wrapped with logging and per-request
// timeouts.
func (s *Server) Handler() http.Handler {
	timeout := time.Duration(s.cfg.RequestTimeoutSeconds) * time.Second
	return s.loggingMiddleware(http.TimeoutHandler(s.mux, timeout, `{"error":"request timed out"}`))
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.ListenAddr).Msg("HTTP server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Annallisboa/QA-app/internal/metrics"
	"github.com/Annallisboa/QA-app/internal/model"
	"github.com/Annallisboa/QA-app/internal/pipeline"
	"github.com/Annallisboa/QA-app/internal/store"
)

//go:embed all:static
var staticFS embed.FS

// Runner answers one question through the prompt pipeline.
type Runner interface {
	Run(ctx context.Context, request string) (pipeline.Result, error)
}

// Server serves the Q&A page and its JSON API.
type Server struct {
	Runner   Runner
	Sessions *store.Store
	Defaults model.MapState
	Logger   *slog.Logger
	Addr     string

	// Optional.
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	// AskTimeout bounds one pipeline run. Zero means no limit.
	AskTimeout time.Duration
}

// Handler builds the router.
func (s *Server) Handler() (http.Handler, error) {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Get("/state", s.handleState)
	})

	if s.MetricsHandler != nil {
		r.Handle("/metrics", s.MetricsHandler)
	}

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	r.Handle("/*", http.FileServer(http.FS(staticSub)))

	return r, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("serving", "url", "http://"+s.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

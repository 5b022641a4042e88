package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

// Server exposes calculations and their calendar documents over HTTP.
type Server struct {
	repo     store.Repository
	settings config.Settings
	clock    engine.Clock
	router   *mux.Router

	// docs holds recently rendered documents keyed by id, format and page.
	// A stored calculation never changes, so entries never go stale.
	docs *docCache
}

// Option customizes New.
type Option func(*Server)

// WithClock pins "today" for progress reports and birth date validation.
func WithClock(c engine.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// New creates a server backed by repo.
func New(repo store.Repository, settings config.Settings, opts ...Option) *Server {
	s := &Server{
		repo:     repo,
		settings: settings,
		clock:    engine.RealClock{},
		docs:     newDocCache(settings.DocCacheEntries, settings.DocCacheBytes),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc(config.RouteCalculations, s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(config.RouteCalculation, s.handleGet).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(config.RouteCalendarPDF, s.handlePDF).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(config.RouteCalendarICS, s.handleICS).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(config.RouteCalendarPNG, s.handlePNG).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(config.RouteHealth, s.handleHealth).Methods(http.MethodGet, http.MethodHead)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, config.HTTPMsgNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, config.HTTPMsgMethodNotAll)
	})
	return r
}

// Start serves on the configured address and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.settings.Addr == "" {
		return errors.New(config.ErrAddrRequired)
	}

	srv := &http.Server{
		Addr:         s.settings.Addr,
		Handler:      s.router,
		ReadTimeout:  s.settings.ReadTimeout,
		WriteTimeout: s.settings.WriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, s.settings.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.settings.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// statusRecorder captures the status code for the request log.
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

		level := slog.LevelDebug
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, config.MsgRequest,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyStatus, rec.status,
			config.LogKeyDuration, time.Since(start).Milliseconds(),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeFailure maps domain and store errors onto HTTP status codes.
func writeFailure(w http.ResponseWriter, err error) {
	var validationErr *engine.ValidationError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, engine.ErrDomain), errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrAmbiguousID), errors.Is(err, errPageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error(config.MsgRequestFailed,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		writeError(w, http.StatusInternalServerError, config.HTTPMsgInternalErr)
	}
}

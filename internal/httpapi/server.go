// Package httpapi exposes the app's operations as JSON routes for the phone
// bridge. Requests are handled one at a time.
package httpapi

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	devicein "ritual/internal/modules/device/port/in"
	instagramin "ritual/internal/modules/instagram/port/in"
	settingsin "ritual/internal/modules/settings/port/in"
	summaryin "ritual/internal/modules/summary/port/in"
	trainingin "ritual/internal/modules/training/port/in"
	"ritual/internal/platform/clock"
	apperrors "ritual/internal/platform/errors"
)

const (
	SecretHeader    = "X-Ritual-Secret"
	maxBacklog      = 64
	backlogTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Deps struct {
	Device    devicein.Usecase
	Instagram instagramin.Usecase
	Settings  settingsin.Usecase
	Training  trainingin.Usecase
	Summary   summaryin.Usecase
	Clock     clock.Clock
	Secret    string
	Logger    *zap.Logger
}

type Server struct {
	deps   Deps
	logger *zap.Logger
	router chi.Router
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	s := &Server{deps: deps, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.requireSecret)
	r.Use(middleware.ThrottleBacklog(1, maxBacklog, backlogTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, s.logger, map[string]string{"status": "ok"}, http.StatusOK)
	})
	r.Post("/signals", s.postSignals)
	r.Get("/summaries", s.getSummaries)
	r.Post("/summaries/{day}/export", s.exportSummary)
	r.Route("/instagram", func(r chi.Router) {
		r.Get("/events", s.getInstagramEvents)
		r.Post("/reason", s.postRelapseReason)
	})
	r.Get("/settings", s.getSettings)
	r.Patch("/settings", s.patchSettings)
	r.Route("/training", func(r chi.Router) {
		r.Post("/start", s.startTraining)
		r.Post("/break", s.markTrainingBreak)
		r.Get("/stats", s.getTrainingStats)
		r.Get("/sessions", s.getTrainingSessions)
	})
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http api listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		s.logger.Info("http api stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) requireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Secret != "" && r.URL.Path != "/healthz" {
			got := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.deps.Secret)) != 1 {
				respondError(w, s.logger, fmt.Errorf("%w: missing or wrong %s", apperrors.ErrUnauthorized, SecretHeader))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 4 << 10
)

type Server struct {
	logger   *slog.Logger
	handlers Handlers
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: NewHandlers(logger, sessions),
	}
}

// Router wires every REST route.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(that.logRequests)
	router.Use(middleware.RequestSize(maxBodyBytes))

	router.Get("/ping", NewPingHandler().PingHandler)

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", that.handlers.StartSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", that.handlers.GetSession)
			r.Delete("/", that.handlers.EndSession)
			r.Post("/moves", that.handlers.RequestMove)
			r.Post("/jump", that.handlers.JumpTo)
			r.Post("/order", that.handlers.ToggleOrder)
			r.Get("/board.svg", that.handlers.BoardImage)
		})
	})

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

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

const shutdownTimeout = 5 * time.Second

func NewRouter(logger *slog.Logger, handlers Handlers) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	router.Get("/ping", handlers.PingHandler)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", handlers.CreateGame)
		r.Get("/{gameID}", handlers.GetGame)
		r.Post("/{gameID}/turns", handlers.MakeTurn)
		r.Post("/{gameID}/reset", handlers.ResetGame)
		r.Delete("/{gameID}", handlers.DeleteGame)
	})

	router.Route("/trees", func(r chi.Router) {
		r.Post("/", handlers.CreateTree)
		r.Get("/{treeID}", handlers.GetTree)
		r.Delete("/{treeID}", handlers.DeleteTree)
		r.Post("/{treeID}/nodes", handlers.InsertNode)
		r.Patch("/{treeID}/nodes/{nodeID}", handlers.RenameNode)
		r.Delete("/{treeID}/nodes/{nodeID}", handlers.DeleteNode)
	})

	return router
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("component", "rest")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(started),
				"requestID", middleware.GetReqID(r.Context()),
			)
		})
	}
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/pixelplay/tictactoe-server/internal/registry"
)

type statsProvider interface {
	Stats() registry.Stats
}

// Start serves the read-only status surface. The endpoints only take locked
// snapshots of core state; they never mutate it.
func Start(ctx context.Context, port, clientOrigin string, stats statsProvider) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      newRouter(clientOrigin, stats),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func newRouter(clientOrigin string, stats statsProvider) http.Handler {
	handlers := NewHandlers(stats)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlers.Ping)
	mux.HandleFunc("/stats", handlers.Stats)
	mux.HandleFunc("/", handlers.Root)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{clientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return corsMiddleware.Handler(mux)
}

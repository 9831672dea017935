package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pixelplay/tictactoe-server/internal/entity"
	"github.com/pixelplay/tictactoe-server/internal/usecase"
)

type coordinator interface {
	Connect(handle string, send usecase.SendFunc) (*entity.User, error)
	Dispatch(handle string, event *usecase.Event)
	Disconnect(handle string)
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	upgrader    websocket.Upgrader
}

// New builds the websocket server. An empty clientOrigin disables the origin
// check, which also lets non-browser clients connect.
func New(logger *slog.Logger, coordinator coordinator, clientOrigin string) *Server {
	return &Server{
		logger:      logger,
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				if clientOrigin == "" {
					return true
				}
				origin := req.Header.Get("Origin")
				return origin == "" || origin == clientOrigin
			},
		},
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// ServeHTTP upgrades the connection, registers it with the coordinator and
// runs the read loop until the connection is gone.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	handle := uuid.NewString()
	client := newClient(that.logger, conn, handle)

	if _, err = that.coordinator.Connect(handle, client.Send); err != nil {
		log.Error("failed to register connection", "handle", handle, "error", err)
		_ = conn.Close()
		return
	}

	log.Info("WebSocket connection established", "handle", handle)

	go client.writeLoop()
	client.readLoop(that.coordinator)
}

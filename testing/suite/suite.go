package suite

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelplay/tictactoe-server/internal/usecase"
	transport "github.com/pixelplay/tictactoe-server/transport/websocket"
)

const (
	maxWaitDuration = 60 * time.Second
	readWait        = 5 * time.Second
)

// Suite spins up the full server in-process on an httptest listener so tests
// can drive it with real websocket clients.
type Suite struct {
	*testing.T
	Logger      *slog.Logger
	Coordinator *usecase.Coordinator

	URL string
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	coordinator := usecase.NewCoordinator(logger)
	server := httptest.NewServer(transport.New(logger, coordinator, ""))
	t.Cleanup(server.Close)

	suite := &Suite{
		T:           t,
		Logger:      logger,
		Coordinator: coordinator,
		URL:         "ws" + strings.TrimPrefix(server.URL, "http"),
	}

	return ctx, suite
}

// Dial opens a client connection to the in-process server.
func (that *Suite) Dial() *websocket.Conn {
	that.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(that.URL, nil)
	if err != nil {
		that.Fatalf("could not dial server: %v", err)
	}
	that.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// SendEvent writes one {type, data} envelope on the connection.
func (that *Suite) SendEvent(conn *websocket.Conn, eventType string, data any) {
	that.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		that.Fatalf("could not marshal payload: %v", err)
	}

	if err = conn.WriteJSON(usecase.Event{Type: eventType, Data: raw}); err != nil {
		that.Fatalf("could not write event: %v", err)
	}
}

// ReadEvent blocks for the next envelope on the connection.
func (that *Suite) ReadEvent(conn *websocket.Conn) *usecase.Event {
	that.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
		that.Fatalf("could not set read deadline: %v", err)
	}

	var event usecase.Event
	if err := conn.ReadJSON(&event); err != nil {
		that.Fatalf("could not read event: %v", err)
	}

	return &event
}

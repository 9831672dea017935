package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelplay/tictactoe-server/internal/apperror"
	"github.com/pixelplay/tictactoe-server/internal/usecase"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 256
)

// client owns one websocket connection: a read loop feeding the coordinator
// and a write loop draining the buffered send channel.
type client struct {
	logger *slog.Logger
	handle string
	conn   *websocket.Conn
	send   chan *usecase.Event
}

func newClient(logger *slog.Logger, conn *websocket.Conn, handle string) *client {
	return &client{
		logger: logger,
		handle: handle,
		conn:   conn,
		send:   make(chan *usecase.Event, sendBuffer),
	}
}

// Send enqueues one outbound event without blocking. A saturated buffer is
// treated the same as a closed connection; the coordinator's notify paths
// swallow that outcome.
func (that *client) Send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	select {
	case that.send <- &usecase.Event{Type: event, Data: raw}:
		return nil
	default:
		return fmt.Errorf("%w: handle %s", apperror.ErrConnectionClosed, that.handle)
	}
}

// readLoop decodes inbound envelopes and dispatches them in arrival order.
// Malformed frames are discarded without dropping the connection. On exit it
// runs the disconnect cleanup exactly once; closing the send channel stops
// the write loop.
func (that *client) readLoop(c coordinator) {
	log := that.logger.With("method", "readLoop", "handle", that.handle)

	defer func() {
		c.Disconnect(that.handle)
		close(that.send)
		_ = that.conn.Close()
	}()

	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("connection read failed", "error", err)
			}
			return
		}

		var event usecase.Event
		if err = json.Unmarshal(raw, &event); err != nil {
			log.Debug("discarding malformed message", "error", err)
			continue
		}

		c.Dispatch(that.handle, &event)
	}
}

// writeLoop pumps outbound events to the connection and keeps it alive with
// periodic pings.
func (that *client) writeLoop() {
	log := that.logger.With("method", "writeLoop", "handle", that.handle)

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case event, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(event); err != nil {
				log.Debug("connection write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

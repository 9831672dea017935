package usecase

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelplay/tictactoe-server/internal/apperror"
	"github.com/pixelplay/tictactoe-server/internal/entity"
)

type sentEvent struct {
	Event string
	Data  any
}

// fakeConn records outbound events; flipping closed simulates a peer whose
// socket is already gone.
type fakeConn struct {
	events []sentEvent
	closed bool
}

func (that *fakeConn) send(event string, data any) error {
	if that.closed {
		return apperror.ErrConnectionClosed
	}

	that.events = append(that.events, sentEvent{Event: event, Data: data})
	return nil
}

func (that *fakeConn) reset() {
	that.events = nil
}

func newTestCoordinator() *Coordinator {
	return NewCoordinator(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func connect(t *testing.T, coordinator *Coordinator, handle string) *fakeConn {
	t.Helper()

	conn := &fakeConn{}
	_, err := coordinator.Connect(handle, conn.send)
	require.NoError(t, err)

	return conn
}

func newEvent(t *testing.T, eventType string, data any) *Event {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	return &Event{Type: eventType, Data: raw}
}

// pairUsers connects two users and matches them: "a" ends up with circle,
// "b" with cross. Both recorders are cleared of the matchmaking events.
func pairUsers(t *testing.T, coordinator *Coordinator) (*fakeConn, *fakeConn) {
	t.Helper()

	connA := connect(t, coordinator, "a")
	connB := connect(t, coordinator, "b")

	coordinator.Dispatch("a", newEvent(t, EventRequestToPlay, requestToPlayPayload{PlayerName: "Alice"}))
	coordinator.Dispatch("b", newEvent(t, EventRequestToPlay, requestToPlayPayload{PlayerName: "Bob"}))

	require.Equal(t, 1, coordinator.Stats().ActiveMatches)
	connA.reset()
	connB.reset()

	return connA, connB
}

func moveEvent(t *testing.T, cell int, sign string) *Event {
	t.Helper()

	return newEvent(t, EventPlayerMoveFromClient, playerMovePayload{ID: &cell, Sign: sign})
}

func mustUser(t *testing.T, coordinator *Coordinator, handle string) *entity.User {
	t.Helper()

	user, ok := coordinator.registry.Get(handle)
	require.True(t, ok)

	return user
}

package usecase

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixelplay/tictactoe-server/internal/entity"
	"github.com/pixelplay/tictactoe-server/internal/registry"
)

// SendFunc delivers one outbound event on the connection that owns it. It
// must not block: a closed or saturated connection reports
// apperror.ErrConnectionClosed instead.
type SendFunc func(event string, data any) error

// Coordinator dispatches inbound events to the matchmaking, gameplay, rematch
// and disconnect handlers, and owns the registry they mutate. Every handler
// runs end-to-end under one mutex, so concurrent connections never observe
// half-updated registry state.
type Coordinator struct {
	logger *slog.Logger

	mu       sync.Mutex
	registry *registry.Registry
	conns    map[string]SendFunc

	handlers map[string]func(user *entity.User, data json.RawMessage)
}

func NewCoordinator(logger *slog.Logger) *Coordinator {
	that := &Coordinator{
		logger:   logger,
		registry: registry.New(),
		conns:    make(map[string]SendFunc),
		handlers: make(map[string]func(*entity.User, json.RawMessage)),
	}

	that.handlers[EventRequestToPlay] = that.handleRequestToPlay
	that.handlers[EventPlayerMoveFromClient] = that.handlePlayerMove
	that.handlers[EventPlayAgain] = that.handlePlayAgain

	return that
}

// Connect registers a fresh user for the connection handle and stores its
// outbound delivery function.
func (that *Coordinator) Connect(handle string, send SendFunc) (*entity.User, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	user, err := that.registry.Register(handle)
	if err != nil {
		return nil, fmt.Errorf("failed to register connection: %w", err)
	}

	that.conns[handle] = send
	that.logger.Info("connection registered", "handle", handle)

	return user, nil
}

// Dispatch routes one decoded inbound event. Events for unknown handles and
// unknown event types are discarded.
func (that *Coordinator) Dispatch(handle string, event *Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Dispatch")

	user, ok := that.registry.Get(handle)
	if !ok {
		log.Debug("event for unknown handle", "handle", handle, "event", event.Type)
		return
	}

	handler, ok := that.handlers[event.Type]
	if !ok {
		log.Debug("ignoring unknown event type", "handle", handle, "event", event.Type)
		return
	}

	handler(user, event.Data)
}

// Disconnect runs the cleanup for a lost connection: the user goes offline,
// every match referencing it is detached with a best-effort notification to
// the peer, and the user leaves the registry. Safe to call for handles that
// were already cleaned up.
func (that *Coordinator) Disconnect(handle string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Disconnect")

	defer delete(that.conns, handle)

	user, ok := that.registry.Get(handle)
	if !ok {
		return
	}

	user.Online = false
	user.Playing = false
	user.Available = false

	for _, match := range that.registry.MatchesByUser(handle) {
		opponent := match.Opponent(handle)
		that.notify(opponent.ID, EventOpponentLeftMatch, emptyPayload{})
		opponent.Playing = false
		opponent.Available = false
		that.registry.RemoveMatch(match)
	}

	that.registry.Remove(handle)
	log.Info("connection removed", "handle", handle)
}

// Stats returns a consistent snapshot of the registry counts.
func (that *Coordinator) Stats() registry.Stats {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.registry.Stats()
}

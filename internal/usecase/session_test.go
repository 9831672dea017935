package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_PlayAgain(t *testing.T) {
	t.Run("Resets the requester and detaches the match", func(t *testing.T) {
		// Given: a matched pair with Alice playing circle
		coordinator := newTestCoordinator()
		connA, connB := pairUsers(t, coordinator)

		// When: Alice asks to play again
		coordinator.Dispatch("a", newEvent(t, EventPlayAgain, struct{}{}))

		// Then: only the requester hears gameReset
		require.Len(t, connA.events, 1)
		assert.Equal(t, EventGameReset, connA.events[0].Event)
		assert.Empty(t, connB.events)

		// Then: the requester is back in the pool but must re-supply a name
		userA := mustUser(t, coordinator, "a")
		assert.False(t, userA.Playing)
		assert.True(t, userA.Available)
		assert.Empty(t, userA.Name)

		// Then: the opponent is deactivated, not re-queued
		userB := mustUser(t, coordinator, "b")
		assert.False(t, userB.Playing)
		assert.False(t, userB.Available)
		assert.Equal(t, "Bob", userB.Name)

		assert.Equal(t, 0, coordinator.Stats().ActiveMatches)
	})

	t.Run("Former opponent is not matchable until it requests again", func(t *testing.T) {
		// Given: Alice left the match via playAgain
		coordinator := newTestCoordinator()
		connA, _ := pairUsers(t, coordinator)
		coordinator.Dispatch("a", newEvent(t, EventPlayAgain, struct{}{}))
		connA.reset()

		// When: Alice re-requests with a fresh name
		coordinator.Dispatch("a", newEvent(t, EventRequestToPlay, requestToPlayPayload{PlayerName: "Alice"}))

		// Then: Bob is still deactivated, so no pairing happens
		require.Len(t, connA.events, 1)
		assert.Equal(t, EventOpponentNotFound, connA.events[0].Event)
	})

	t.Run("Without an active match only the requester state changes", func(t *testing.T) {
		// Given: a lone available user
		coordinator := newTestCoordinator()
		conn := connect(t, coordinator, "a")
		coordinator.Dispatch("a", newEvent(t, EventRequestToPlay, requestToPlayPayload{PlayerName: "Alice"}))
		conn.reset()

		// When: it sends playAgain anyway
		coordinator.Dispatch("a", newEvent(t, EventPlayAgain, struct{}{}))

		// Then: gameReset is delivered and the name is cleared
		require.Len(t, conn.events, 1)
		assert.Equal(t, EventGameReset, conn.events[0].Event)
		assert.Empty(t, mustUser(t, coordinator, "a").Name)
	})
}

func TestCoordinator_Disconnect(t *testing.T) {
	t.Run("Notifies the peer exactly once and cleans up", func(t *testing.T) {
		// Given: a matched pair
		coordinator := newTestCoordinator()
		_, connB := pairUsers(t, coordinator)

		// When: Alice's connection drops
		coordinator.Disconnect("a")

		// Then: Bob hears opponentLeftMatch once and is deactivated
		require.Len(t, connB.events, 1)
		assert.Equal(t, EventOpponentLeftMatch, connB.events[0].Event)

		userB := mustUser(t, coordinator, "b")
		assert.False(t, userB.Playing)
		assert.False(t, userB.Available)

		// Then: Alice and the match are gone
		_, ok := coordinator.registry.Get("a")
		assert.False(t, ok)
		stats := coordinator.Stats()
		assert.Equal(t, 1, stats.TotalUsers)
		assert.Equal(t, 0, stats.ActiveMatches)
	})

	t.Run("Swallows a peer whose connection is already gone", func(t *testing.T) {
		// Given: a matched pair with Bob's socket already closed
		coordinator := newTestCoordinator()
		_, connB := pairUsers(t, coordinator)
		connB.closed = true

		// When: Alice disconnects
		coordinator.Disconnect("a")

		// Then: the failed delivery does not stop the cleanup
		assert.Empty(t, connB.events)
		assert.Equal(t, 0, coordinator.Stats().ActiveMatches)
		assert.False(t, mustUser(t, coordinator, "b").Playing)
	})

	t.Run("Safe for a user without an active match", func(t *testing.T) {
		// Given: a lone connected user
		coordinator := newTestCoordinator()
		connect(t, coordinator, "a")

		// When: it disconnects
		coordinator.Disconnect("a")

		// Then: the registry is empty again
		assert.Equal(t, 0, coordinator.Stats().TotalUsers)
	})

	t.Run("Idempotent for unknown handles", func(t *testing.T) {
		coordinator := newTestCoordinator()

		coordinator.Disconnect("ghost")
		coordinator.Disconnect("ghost")

		assert.Equal(t, 0, coordinator.Stats().TotalUsers)
	})
}

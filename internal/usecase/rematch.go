package usecase

import (
	"encoding/json"

	"github.com/pixelplay/tictactoe-server/internal/entity"
)

// handlePlayAgain resets the requester back into the matchmaking pool and
// detaches every match referencing it. The display name is cleared, so the
// next request_to_play must supply it again. The opponent is merely
// deactivated, not re-queued and not notified; it has to issue its own
// request_to_play to play again.
func (that *Coordinator) handlePlayAgain(user *entity.User, _ json.RawMessage) {
	log := that.logger.With("method", "handlePlayAgain")

	user.Playing = false
	user.Available = true
	user.Name = ""

	for _, match := range that.registry.MatchesByUser(user.ID) {
		opponent := match.Opponent(user.ID)
		opponent.Playing = false
		opponent.Available = false
		that.registry.RemoveMatch(match)
	}

	that.notify(user.ID, EventGameReset, emptyPayload{})
	log.Info("user reset for rematch", "handle", user.ID)
}

package usecase

import (
	"encoding/json"

	"github.com/pixelplay/tictactoe-server/internal/entity"
)

func (that *Coordinator) handleRequestToPlay(user *entity.User, data json.RawMessage) {
	log := that.logger.With("method", "handleRequestToPlay")

	var payload requestToPlayPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Debug("discarding malformed payload", "handle", user.ID, "error", err)
		return
	}

	if payload.PlayerName == "" {
		log.Debug("discarding request without player name", "handle", user.ID)
		return
	}

	if user.Playing {
		log.Debug("user is already in a match", "handle", user.ID)
		return
	}

	user.Name = payload.PlayerName
	user.Available = true

	opponent := that.findOpponent(user)
	if opponent == nil {
		that.notify(user.ID, EventOpponentNotFound, emptyPayload{})
		return
	}

	match := entity.NewMatch(opponent, user)
	that.registry.AddMatch(match)

	that.notify(opponent.ID, EventOpponentFound, opponentFoundPayload{
		OpponentName:  user.Name,
		PlayingAs:     entity.SignCircle,
		GameState:     match.Board,
		CurrentPlayer: match.Turn,
	})
	that.notify(user.ID, EventOpponentFound, opponentFoundPayload{
		OpponentName:  opponent.Name,
		PlayingAs:     entity.SignCross,
		GameState:     match.Board,
		CurrentPlayer: match.Turn,
	})

	log.Info("match created", "circle", opponent.ID, "cross", user.ID)
}

// findOpponent scans registered users in insertion order and returns the
// first eligible candidate. No ranking, first match wins; a user is never
// paired with itself.
func (that *Coordinator) findOpponent(user *entity.User) *entity.User {
	for _, candidate := range that.registry.Users() {
		if candidate.ID == user.ID {
			continue
		}

		if candidate.Online && !candidate.Playing && candidate.Available && candidate.IsNamed() {
			return candidate
		}
	}

	return nil
}

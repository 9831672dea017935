package usecase

import (
	"encoding/json"

	"github.com/pixelplay/tictactoe-server/internal/entity"
)

func (that *Coordinator) handlePlayerMove(user *entity.User, data json.RawMessage) {
	log := that.logger.With("method", "handlePlayerMove")

	var payload playerMovePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Debug("discarding malformed payload", "handle", user.ID, "error", err)
		return
	}

	if payload.ID == nil {
		log.Debug("discarding move without cell id", "handle", user.ID)
		return
	}

	match, ok := that.registry.MatchByUser(user.ID)
	if !ok {
		log.Debug("move without an active match", "handle", user.ID)
		return
	}

	if err := match.ApplyMove(*payload.ID, payload.Sign); err != nil {
		// Occupied cells, finished matches and malformed moves are all
		// silently ignored; the client gets no event.
		log.Debug("move ignored", "handle", user.ID, "error", err)
		return
	}

	state := moveStatePayload{
		ID:            *payload.ID,
		Sign:          payload.Sign,
		GameState:     match.Board,
		CurrentPlayer: match.Turn,
		Finished:      match.Finished,
		Winner:        match.Winner,
	}

	that.notify(match.Opponent(user.ID).ID, EventPlayerMoveFromServer, state)
	that.notify(user.ID, EventMoveConfirmed, state)

	if match.Finished {
		log.Info("match finished", "winner", match.Winner)
	}
}

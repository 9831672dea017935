package usecase

import (
	"encoding/json"

	"github.com/pixelplay/tictactoe-server/internal/entity"
)

// Inbound event types.
const (
	EventRequestToPlay        = "request_to_play"
	EventPlayerMoveFromClient = "playerMoveFromClient"
	EventPlayAgain            = "playAgain"
)

// Outbound event types.
const (
	EventOpponentFound        = "OpponentFound"
	EventOpponentNotFound     = "OpponentNotFound"
	EventPlayerMoveFromServer = "playerMoveFromServer"
	EventMoveConfirmed        = "moveConfirmed"
	EventGameReset            = "gameReset"
	EventOpponentLeftMatch    = "opponentLeftMatch"
)

// Event is the wire envelope shared by both directions.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type emptyPayload struct{}

type requestToPlayPayload struct {
	PlayerName string `json:"playerName"`
}

type playerMovePayload struct {
	ID   *int   `json:"id"`
	Sign string `json:"sign"`
}

type opponentFoundPayload struct {
	OpponentName  string       `json:"opponentName"`
	PlayingAs     string       `json:"playingAs"`
	GameState     entity.Board `json:"gameState"`
	CurrentPlayer string       `json:"currentPlayer"`
}

// moveStatePayload is the full authoritative state after a move. The opponent
// receives it as playerMoveFromServer and the mover as moveConfirmed; same
// content, separate event names so the two clients can take different UI
// acknowledgement paths.
type moveStatePayload struct {
	ID            int          `json:"id"`
	Sign          string       `json:"sign"`
	GameState     entity.Board `json:"gameState"`
	CurrentPlayer string       `json:"currentPlayer"`
	Finished      bool         `json:"finished"`
	Winner        string       `json:"winner,omitempty"`
}

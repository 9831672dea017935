package entity

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pixelplay/tictactoe-server/internal/apperror"
)

const (
	SignCircle = "circle"
	SignCross  = "cross"

	WinnerDraw = "draw"

	boardSize = 3
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidSign = errors.New("invalid sign")
)

// Board is the 3x3 grid. An empty cell keeps its 1-based position number as a
// placeholder ("1".."9") until a sign is placed on it.
type Board [boardSize][boardSize]string

func NewBoard() Board {
	var board Board
	for row := range board {
		for col := range board[row] {
			board[row][col] = strconv.Itoa(row*boardSize + col + 1)
		}
	}
	return board
}

// Cell returns the value at a flat index in [0,8].
func (that *Board) Cell(index int) string {
	return that[index/boardSize][index%boardSize]
}

func (that *Board) setCell(index int, sign string) {
	that[index/boardSize][index%boardSize] = sign
}

// Match is one game between exactly two users, order fixed at creation:
// Player1 plays circle, Player2 plays cross.
type Match struct {
	Player1  *User  `json:"player1"`
	Player2  *User  `json:"player2"`
	Board    Board  `json:"board"`
	Turn     string `json:"turn"`
	Finished bool   `json:"finished"`
	Winner   string `json:"winner,omitempty"`
}

// NewMatch creates a fresh match and flags both participants as playing.
func NewMatch(player1, player2 *User) *Match {
	player1.Playing = true
	player1.Available = false
	player2.Playing = true
	player2.Available = false

	return &Match{
		Player1: player1,
		Player2: player2,
		Board:   NewBoard(),
		Turn:    SignCircle,
	}
}

// ApplyMove marks a cell with the claimed sign and advances the turn to the
// opposite sign. There is no turn-ownership check beyond the occupancy check:
// the client's claimed sign is trusted.
func (that *Match) ApplyMove(cell int, sign string) error {
	if that.Finished {
		return apperror.ErrMatchFinished
	}

	if cell < 0 || cell >= boardSize*boardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !IsSign(sign) {
		return fmt.Errorf("%w: %q", ErrInvalidSign, sign)
	}

	if IsSign(that.Board.Cell(cell)) {
		return apperror.ErrCellOccupied
	}

	that.Board.setCell(cell, sign)
	that.Turn = OppositeSign(sign)

	if winner := that.DetermineResult(); winner != "" {
		that.Finished = true
		that.Winner = winner
	}

	return nil
}

// DetermineResult scans rows, then columns, then the two diagonals for three
// equal signs; placeholder cells never match. It returns the winning sign,
// WinnerDraw when the board is full with no winning line, or "" while the
// game is still open.
func (that *Match) DetermineResult() string {
	for row := 0; row < boardSize; row++ {
		if sign := that.Board[row][0]; IsSign(sign) && sign == that.Board[row][1] && sign == that.Board[row][2] {
			return sign
		}
	}

	for col := 0; col < boardSize; col++ {
		if sign := that.Board[0][col]; IsSign(sign) && sign == that.Board[1][col] && sign == that.Board[2][col] {
			return sign
		}
	}

	if sign := that.Board[0][0]; IsSign(sign) && sign == that.Board[1][1] && sign == that.Board[2][2] {
		return sign
	}

	if sign := that.Board[0][2]; IsSign(sign) && sign == that.Board[1][1] && sign == that.Board[2][0] {
		return sign
	}

	for row := range that.Board {
		for col := range that.Board[row] {
			if !IsSign(that.Board[row][col]) {
				return ""
			}
		}
	}

	return WinnerDraw
}

func (that *Match) HasParticipant(id string) bool {
	return that.Player1.ID == id || that.Player2.ID == id
}

// Opponent returns the other participant, or nil when the id is not part of
// this match.
func (that *Match) Opponent(id string) *User {
	switch id {
	case that.Player1.ID:
		return that.Player2
	case that.Player2.ID:
		return that.Player1
	default:
		return nil
	}
}

func IsSign(value string) bool {
	return value == SignCircle || value == SignCross
}

func OppositeSign(sign string) string {
	if sign == SignCircle {
		return SignCross
	}
	return SignCircle
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"

	// NoMove is LastIndex of a game nobody has played in yet.
	NoMove = -1
)

type Game struct {
	ID        string `json:"id"`
	Size      int    `json:"size"`
	Board     []Mark `json:"board"`
	Winner    string `json:"winner"`
	Status    string `json:"status"`
	Turn      Mark   `json:"player_turn"`
	LastIndex int    `json:"last_index"`
}

func NewGame(id string, size int) *Game {
	return &Game{
		ID:        id,
		Size:      size,
		Board:     NewBoard(size),
		Turn:      PlayerX,
		Status:    StatusOngoing,
		LastIndex: NoMove,
	}
}

// DetermineGameResult - returns the winning mark, PlayerTie or "" while the game goes on.
func (that *Game) DetermineGameResult() string {
	if that.LastIndex == NoMove {
		return ""
	}

	mark := that.Board[that.LastIndex]
	if CheckWin(that.LastIndex, that.Size, mark, that.Board) {
		return string(mark)
	}

	// the game will continue until all the squares are full
	if !IsBoardFull(that.Board) {
		return ""
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	case "":
		that.Status = StatusOngoing
	// one player wins
	default:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	}
}

func (that *Game) MakeTurn(playerMark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.LastIndex = cell
	that.Turn = playerMark.Opponent()

	that.UpdateGameState()

	return nil
}

// Reset - clears the board, keeping id and size.
func (that *Game) Reset() {
	*that = *NewGame(that.ID, that.Size)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

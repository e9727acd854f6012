package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidMark      = errors.New("invalid player mark")

	ErrNodeNotFound = errors.New("node not found")
	ErrNotAFolder   = errors.New("node is not a folder")
	ErrEmptyName    = errors.New("name must not be empty")
)

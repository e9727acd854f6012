package entity

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// Opponent returns the mark that plays after m.
func (m Mark) Opponent() Mark {
	if m == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// IsPlayer reports whether m is one of the two player marks.
func (m Mark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// CheckWin - reports whether the mark just placed at lastIndex completed a row,
// a column or one of the two diagonals of a size×size board.
// The move must already be applied to board.
func CheckWin(lastIndex, size int, mark Mark, board []Mark) bool {
	if size <= 0 || lastIndex < 0 || lastIndex >= size*size || len(board) < size*size {
		return false
	}

	row, col := lastIndex/size, lastIndex%size

	if lineIsUniform(board, mark, size, func(i int) int { return row*size + i }) {
		return true
	}

	if lineIsUniform(board, mark, size, func(i int) int { return i*size + col }) {
		return true
	}

	// main diagonal
	if row == col && lineIsUniform(board, mark, size, func(i int) int { return i*size + i }) {
		return true
	}

	// anti-diagonal
	if row+col == size-1 && lineIsUniform(board, mark, size, func(i int) int { return i*size + size - 1 - i }) {
		return true
	}

	return false
}

func lineIsUniform(board []Mark, mark Mark, size int, cellAt func(i int) int) bool {
	for i := range size {
		if board[cellAt(i)] != mark {
			return false
		}
	}
	return true
}

// IsBoardFull - the draw test, meaningful only after CheckWin returned false.
func IsBoardFull(board []Mark) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// NewBoard returns an empty size×size board.
func NewBoard(size int) []Mark {
	return make([]Mark, size*size)
}

package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// WinCombos lists every winning line in the order they are checked:
// rows, columns, then the two diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// DetectWin returns the first complete line on the board, or nil.
func DetectWin(board entity.Board) *entity.WinResult {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return &entity.WinResult{Mark: a, Line: combo}
		}
	}

	return nil
}

// IsDraw reports a full board without a winner.
func IsDraw(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return DetectWin(board) == nil
}

// NextMark derives whose turn it is from the move number: X plays on even moves.
func NextMark(move int) string {
	if move%2 == 0 {
		return entity.MarkX
	}
	return entity.MarkO
}

// ApplyMove places mark on cell. It returns false and the unchanged board
// when the cell is outside the board, already taken, or the game is won.
func ApplyMove(board entity.Board, cell int, mark string) (entity.Board, entity.Coord, bool) {
	if !validateMove(board, cell) {
		return board, entity.Coord{}, false
	}

	next := board
	next[cell] = mark

	return next, entity.CoordOf(cell), true
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) bool {
	if cell < 0 || cell >= len(board) {
		return false
	}

	if board[cell] != entity.EmptyCell {
		return false
	}

	return DetectWin(board) == nil
}

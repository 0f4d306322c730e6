package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	statusWinner = "Winner: %s"
	statusNext   = "Next player: %s"
	statusDraw   = "Draw."
)

// Play puts the next mark on cell of the board at CurrentMove. Any history
// after CurrentMove is dropped before the new snapshot is appended.
// The input state is never modified; false means nothing changed.
func Play(state entity.State, cell int) (entity.State, bool) {
	if state.CurrentMove < 0 || state.CurrentMove >= len(state.History) {
		return state, false
	}

	board, coord, ok := ApplyMove(state.CurrentBoard(), cell, NextMark(state.CurrentMove))
	if !ok {
		return state, false
	}

	kept := state.CurrentMove + 1
	history := make([]entity.HistoryEntry, kept, kept+1)
	copy(history, state.History[:kept])
	history = append(history, entity.HistoryEntry{Board: board, Coord: &coord})

	return entity.State{
		History:     history,
		CurrentMove: len(history) - 1,
		Ascending:   state.Ascending,
	}, true
}

// JumpTo moves CurrentMove to an existing snapshot and leaves History alone.
// Out of range moves are refused.
func JumpTo(state entity.State, move int) (entity.State, bool) {
	if move < 0 || move >= len(state.History) {
		return state, false
	}

	state.CurrentMove = move

	return state, true
}

// Status is the line shown above the board.
func Status(state entity.State) string {
	if win := DetectWin(state.CurrentBoard()); win != nil {
		return fmt.Sprintf(statusWinner, win.Mark)
	}

	if state.CurrentMove < entity.BoardSize {
		return fmt.Sprintf(statusNext, NextMark(state.CurrentMove))
	}

	return statusDraw
}

package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoves(t *testing.T) {
	t.Run("Ascending order", func(t *testing.T) {
		// Given: two moves played and the player back at move 1
		state := playAll(t, entity.NewState(), 4, 0)
		state, _ = JumpTo(state, 1)

		// When: listing the moves
		items := Moves(state)

		// Then: entries follow history order with their labels
		expected := []entity.MoveItem{
			{Move: 0, DisplayNumber: 1, Label: "Go to the game start"},
			{Move: 1, DisplayNumber: 2, Label: "You are at move #1 (2,2)", IsCurrent: true},
			{Move: 2, DisplayNumber: 3, Label: "Go to move #2 (1,1)"},
		}
		assert.Equal(t, expected, items)
	})

	t.Run("Descending order", func(t *testing.T) {
		// Given: the same game with the order toggled
		state := playAll(t, entity.NewState(), 4, 0)
		state = ToggleOrder(state)

		// When: listing the moves
		items := Moves(state)

		// Then: entries are reversed and numbered from the top down
		expected := []entity.MoveItem{
			{Move: 2, DisplayNumber: 3, Label: "You are at move #2 (1,1)", IsCurrent: true},
			{Move: 1, DisplayNumber: 2, Label: "Go to move #1 (2,2)"},
			{Move: 0, DisplayNumber: 1, Label: "Go to the game start"},
		}
		assert.Equal(t, expected, items)
	})

	t.Run("Game start is current", func(t *testing.T) {
		items := Moves(entity.NewState())

		require.Len(t, items, 1)
		assert.Equal(t, "You are at the game start.", items[0].Label)
		assert.True(t, items[0].IsCurrent)
	})
}

func TestToggleOrder(t *testing.T) {
	// Given: a game in progress
	state := playAll(t, entity.NewState(), 4, 0, 8)
	state, _ = JumpTo(state, 1)

	// When: toggling twice
	once := ToggleOrder(state)
	twice := ToggleOrder(once)

	// Then: only the flag changes
	assert.False(t, once.Ascending)
	assert.Equal(t, state.History, once.History)
	assert.Equal(t, state.CurrentMove, once.CurrentMove)
	assert.Equal(t, state, twice)
}

func TestBuildView(t *testing.T) {
	t.Run("Game in progress", func(t *testing.T) {
		state := playAll(t, entity.NewState(), 4)

		view := BuildView("s1", state)

		assert.Equal(t, "s1", view.SessionID)
		assert.Equal(t, entity.Board{e, e, e, e, x, e, e, e, e}, view.Board)
		assert.Equal(t, o, view.NextMark)
		assert.Nil(t, view.Winner)
		assert.False(t, view.Draw)
		assert.Equal(t, "Next player: O", view.Status)
		assert.Len(t, view.Moves, 2)
	})

	t.Run("Won game", func(t *testing.T) {
		state := playAll(t, entity.NewState(), 0, 3, 1, 4, 2)

		view := BuildView("s1", state)

		require.NotNil(t, view.Winner)
		assert.Equal(t, [3]int{0, 1, 2}, view.Winner.Line)
		assert.Empty(t, view.NextMark)
		assert.Equal(t, "Winner: X", view.Status)
	})

	t.Run("Drawn game", func(t *testing.T) {
		state := playAll(t, entity.NewState(), 0, 1, 2, 4, 3, 5, 7, 6, 8)

		view := BuildView("s1", state)

		assert.True(t, view.Draw)
		assert.Empty(t, view.NextMark)
		assert.Equal(t, "Draw.", view.Status)
	})
}

package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// ToggleOrder flips the direction of the move list.
func ToggleOrder(state entity.State) entity.State {
	state.Ascending = !state.Ascending
	return state
}

// Moves projects History into the list shown next to the board, in the
// order selected by state.Ascending.
func Moves(state entity.State) []entity.MoveItem {
	total := len(state.History)
	items := make([]entity.MoveItem, 0, total)

	for pos := range total {
		move := pos
		display := pos + 1
		if !state.Ascending {
			move = total - 1 - pos
			display = total - pos
		}

		items = append(items, entity.MoveItem{
			Move:          move,
			DisplayNumber: display,
			Label:         moveLabel(state.History[move], move, move == state.CurrentMove),
			IsCurrent:     move == state.CurrentMove,
		})
	}

	return items
}

func moveLabel(entry entity.HistoryEntry, move int, current bool) string {
	switch {
	case move == 0 && current:
		return "You are at the game start."
	case move == 0:
		return "Go to the game start"
	case current:
		return fmt.Sprintf("You are at move #%d %s", move, coordLabel(entry.Coord))
	default:
		return fmt.Sprintf("Go to move #%d %s", move, coordLabel(entry.Coord))
	}
}

func coordLabel(coord *entity.Coord) string {
	if coord == nil {
		return ""
	}
	return coord.String()
}

// BuildView collects the presentation outputs of a state.
func BuildView(sessionID string, state entity.State) *entity.View {
	board := state.CurrentBoard()
	win := DetectWin(board)
	draw := win == nil && IsDraw(board)

	view := &entity.View{
		SessionID:   sessionID,
		Board:       board,
		CurrentMove: state.CurrentMove,
		Winner:      win,
		Draw:        draw,
		Status:      Status(state),
		Ascending:   state.Ascending,
		Moves:       Moves(state),
	}

	if win == nil && !draw {
		view.NextMark = NextMark(state.CurrentMove)
	}

	return view
}

// Package render draws a session view for people: as coloured text for a
// terminal or as an SVG image. The winning line is highlighted in green.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	winColor     = "#2e7d32"
	currentColor = "#1565c0"
)

// Terminal writes the status line, the board and the move list.
// Colours follow profile; termenv.Ascii prints plain text.
func Terminal(w io.Writer, view *entity.View, profile termenv.Profile) error {
	output := termenv.NewOutput(w, termenv.WithProfile(profile))

	var sb strings.Builder

	sb.WriteString(output.String(view.Status).Bold().String())
	sb.WriteString("\n\n")

	for row := range 3 {
		cells := make([]string, 3)
		for col := range 3 {
			cells[col] = terminalCell(output, view, row*3+col)
		}
		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if row < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString("\n")

	for _, item := range view.Moves {
		line := fmt.Sprintf("%d. %s", item.DisplayNumber, item.Label)
		if item.IsCurrent {
			line = output.String(line).Foreground(output.Color(currentColor)).String()
		}
		sb.WriteString(line + "\n")
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func terminalCell(output *termenv.Output, view *entity.View, cell int) string {
	mark := view.Board[cell]
	if mark == entity.EmptyCell {
		return fmt.Sprintf("%d", cell)
	}

	style := output.String(mark).Bold()
	if onWinLine(view.Winner, cell) {
		style = style.Foreground(output.Color(winColor))
	}

	return style.String()
}

func onWinLine(win *entity.WinResult, cell int) bool {
	if win == nil {
		return false
	}

	for _, idx := range win.Line {
		if idx == cell {
			return true
		}
	}

	return false
}

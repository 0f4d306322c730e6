package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	cellSize   = 100
	boardSize  = cellSize * 3
	statusSize = 40
)

// SVG writes the board of view as a standalone SVG document.
func SVG(w io.Writer, view *entity.View) {
	canvas := svg.New(w)
	canvas.Start(boardSize, boardSize+statusSize)
	canvas.Rect(0, 0, boardSize, boardSize+statusSize, "fill:white")

	for i := 1; i < 3; i++ {
		canvas.Line(i*cellSize, 0, i*cellSize, boardSize, "stroke:black;stroke-width:4")
		canvas.Line(0, i*cellSize, boardSize, i*cellSize, "stroke:black;stroke-width:4")
	}

	for cell, mark := range view.Board {
		if mark == entity.EmptyCell {
			continue
		}

		color := "black"
		if onWinLine(view.Winner, cell) {
			color = "green"
		}

		x := (cell%3)*cellSize + cellSize/2
		y := (cell/3)*cellSize + cellSize/2
		canvas.Text(x, y, mark, fmt.Sprintf(
			"fill:%s;font-size:64px;font-family:sans-serif;text-anchor:middle;dominant-baseline:central", color))
	}

	canvas.Text(boardSize/2, boardSize+statusSize/2, view.Status,
		"fill:black;font-size:20px;font-family:sans-serif;text-anchor:middle;dominant-baseline:central")
	canvas.End()
}

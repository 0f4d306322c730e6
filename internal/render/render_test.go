package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewAfter(t *testing.T, cells ...int) *entity.View {
	t.Helper()

	state := entity.NewState()
	for _, cell := range cells {
		next, ok := tictactoe.Play(state, cell)
		require.True(t, ok)
		state = next
	}

	return tictactoe.BuildView("s1", state)
}

func TestTerminal(t *testing.T) {
	t.Run("Plain board", func(t *testing.T) {
		// Given: X in the centre
		view := viewAfter(t, 4)

		// When: rendering without colours
		var buf bytes.Buffer
		require.NoError(t, Terminal(&buf, view, termenv.Ascii))

		// Then: status, board and moves are printed
		expected := strings.Join([]string{
			"Next player: O",
			"",
			" 0 | 1 | 2",
			"---+---+---",
			" 3 | X | 5",
			"---+---+---",
			" 6 | 7 | 8",
			"",
			"1. Go to the game start",
			"2. You are at move #1 (2,2)",
			"",
		}, "\n")
		assert.Equal(t, expected, buf.String())
	})

	t.Run("Winning line is coloured", func(t *testing.T) {
		// Given: X won the top row
		view := viewAfter(t, 0, 3, 1, 4, 2)

		// When: rendering with true colour
		var buf bytes.Buffer
		require.NoError(t, Terminal(&buf, view, termenv.TrueColor))

		// Then: the X marks carry an escape sequence and the status is shown
		out := buf.String()
		assert.Contains(t, out, "Winner: X")
		assert.Contains(t, out, "\x1b[")
	})

	t.Run("Game start", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Terminal(&buf, viewAfter(t), termenv.Ascii))

		assert.True(t, strings.HasSuffix(buf.String(), "\n1. You are at the game start.\n"))
	})
}

func TestSVG(t *testing.T) {
	t.Run("Winning cells are green", func(t *testing.T) {
		view := viewAfter(t, 0, 3, 1, 4, 2)

		var buf bytes.Buffer
		SVG(&buf, view)

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "<?xml"))
		assert.Equal(t, 3, strings.Count(out, "fill:green"))
		assert.Contains(t, out, "Winner: X")
		assert.Contains(t, out, "</svg>")
	})

	t.Run("Empty board has no marks", func(t *testing.T) {
		view := viewAfter(t)

		var buf bytes.Buffer
		SVG(&buf, view)

		assert.NotContains(t, buf.String(), "font-size:64px")
	})
}

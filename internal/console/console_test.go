package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string) (*Console, string) {
	t.Helper()

	var out bytes.Buffer
	c := New(strings.NewReader(input), &out, termenv.Ascii)
	require.NoError(t, c.Run())

	return c, out.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Plays until the input ends", func(t *testing.T) {
		// When: X takes the top row
		c, out := run(t, "0\n3\n1\n4\n2\n")

		// Then: the win is announced
		assert.Equal(t, 5, c.State().CurrentMove)
		assert.Contains(t, out, "Winner: X")
	})

	t.Run("Ignored moves are reported", func(t *testing.T) {
		c, out := run(t, "4\n4\nfoo\n\n")

		assert.Equal(t, 1, c.State().CurrentMove)
		assert.Contains(t, out, "move ignored")
		assert.Contains(t, out, "type 0-8, j N, t or q")
	})

	t.Run("Jump and play truncate the history", func(t *testing.T) {
		c, out := run(t, "0\n1\n2\nj 1\n8\nj 9\nq\n5\n")

		state := c.State()
		assert.Len(t, state.History, 3)
		assert.Equal(t, 2, state.CurrentMove)
		assert.Equal(t, entity.MarkO, state.CurrentBoard()[8])
		assert.Contains(t, out, "no move #9")
		assert.Equal(t, entity.EmptyCell, state.CurrentBoard()[5])
	})

	t.Run("Toggle order", func(t *testing.T) {
		c, out := run(t, "4\nt\n")

		assert.False(t, c.State().Ascending)
		assert.Contains(t, out, "2. You are at move #1 (2,2)\n1. Go to the game start")
	})
}

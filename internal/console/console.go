// Package console plays a local game in a terminal on top of the engine.
//
// Commands, one per line:
//
//	0-8     play that cell
//	j N     jump to move N
//	t       toggle the order of the move list
//	q       quit
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/render"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const prompt = "> "

type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	profile termenv.Profile

	state entity.State
}

func New(in io.Reader, out io.Writer, profile termenv.Profile) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		profile: profile,
		state:   entity.NewState(),
	}
}

// State returns the game as it stands.
func (that *Console) State() entity.State {
	return that.state
}

// Run reads commands until q or end of input.
func (that *Console) Run() error {
	if err := that.draw(); err != nil {
		return err
	}

	for {
		if _, err := io.WriteString(that.out, prompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			return nil
		}

		quit, notice := that.execute(strings.TrimSpace(that.in.Text()))
		if quit {
			return nil
		}

		if notice != "" {
			if _, err := fmt.Fprintln(that.out, notice); err != nil {
				return fmt.Errorf("failed to write notice: %w", err)
			}
			continue
		}

		if err := that.draw(); err != nil {
			return err
		}
	}
}

// execute applies one command. A non-empty notice means nothing changed.
func (that *Console) execute(line string) (bool, string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, "type 0-8, j N, t or q"
	}

	switch fields[0] {
	case "q":
		return true, ""
	case "t":
		that.state = tictactoe.ToggleOrder(that.state)
		return false, ""
	case "j":
		if len(fields) != 2 {
			return false, "usage: j N"
		}
		move, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, "usage: j N"
		}
		next, ok := tictactoe.JumpTo(that.state, move)
		if !ok {
			return false, fmt.Sprintf("no move #%d", move)
		}
		that.state = next
		return false, ""
	}

	cell, err := strconv.Atoi(fields[0])
	if err != nil {
		return false, "type 0-8, j N, t or q"
	}

	next, ok := tictactoe.Play(that.state, cell)
	if !ok {
		return false, "move ignored"
	}
	that.state = next

	return false, ""
}

func (that *Console) draw() error {
	return render.Terminal(that.out, tictactoe.BuildView("", that.state), that.profile)
}

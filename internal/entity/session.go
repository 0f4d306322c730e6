package entity

import (
	"fmt"
	"time"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

const BoardSize = 9

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]string

// Coord is the 1-based row and column of a cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// CoordOf converts a cell index into its 1-based coordinate.
func CoordOf(cell int) Coord {
	return Coord{Row: cell/3 + 1, Col: cell%3 + 1}
}

// HistoryEntry is a board snapshot and the move that produced it.
// Coord is nil for the initial empty board.
type HistoryEntry struct {
	Board Board  `json:"board"`
	Coord *Coord `json:"coord,omitempty"`
}

// WinResult holds the winning mark and the three cells of its line.
type WinResult struct {
	Mark string `json:"mark"`
	Line [3]int `json:"line"`
}

// State is the whole game of one session. History and CurrentMove are
// only ever changed together.
type State struct {
	History     []HistoryEntry `json:"history"`
	CurrentMove int            `json:"current_move"`
	Ascending   bool           `json:"ascending"`
}

// NewState returns a state holding only the empty board.
func NewState() State {
	return State{
		History:     []HistoryEntry{{}},
		CurrentMove: 0,
		Ascending:   true,
	}
}

// CurrentBoard returns the snapshot at CurrentMove.
func (that State) CurrentBoard() Board {
	if that.CurrentMove < 0 || that.CurrentMove >= len(that.History) {
		return Board{}
	}

	return that.History[that.CurrentMove].Board
}

type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MoveItem is one row of the history list shown to the players.
type MoveItem struct {
	Move          int    `json:"move"`
	DisplayNumber int    `json:"display_number"`
	Label         string `json:"label"`
	IsCurrent     bool   `json:"is_current"`
}

// View is everything a presentation layer needs to draw a session.
type View struct {
	SessionID   string     `json:"session_id,omitempty"`
	Board       Board      `json:"board"`
	CurrentMove int        `json:"current_move"`
	NextMark    string     `json:"next_mark,omitempty"`
	Winner      *WinResult `json:"winner,omitempty"`
	Draw        bool       `json:"draw"`
	Status      string     `json:"status"`
	Ascending   bool       `json:"ascending"`
	Moves       []MoveItem `json:"moves"`
}

package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	actionSessionNew    = "session:new"
	actionSessionGet    = "session:get"
	actionGameMove      = "game:move"
	actionGameJump      = "game:jump"
	actionHistoryToggle = "history:toggle"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of every action. SessionID may be
// left empty once the connection has started or joined a session.
type RequestPayload struct {
	SessionID string `json:"session_id,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
	Move      *int   `json:"move,omitempty"`
}

type ResponsePayload struct {
	SessionID string       `json:"session_id,omitempty"`
	View      *entity.View `json:"view,omitempty"`
	Applied   *bool        `json:"applied,omitempty"`
	Error     string       `json:"error,omitempty"`
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(0))

	srv := httptest.NewServer(New(logger, manager).Handler(ctx))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) (string, ResponsePayload) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: body}))

	var reply Message
	require.NoError(t, conn.ReadJSON(&reply))

	var response ResponsePayload
	require.NoError(t, json.Unmarshal(reply.Payload, &response))

	return reply.Action, response
}

func TestServer_GameFlow(t *testing.T) {
	conn := dial(t)

	// Given: a new session bound to the connection
	action, resp := send(t, conn, actionSessionNew, RequestPayload{})
	require.Equal(t, actionSessionNew, action)
	require.Empty(t, resp.Error)
	require.NotEmpty(t, resp.SessionID)
	sessionID := resp.SessionID

	// When: X takes the top row while O plays the middle row
	for _, cell := range []int{0, 3, 1, 4, 2} {
		_, resp = send(t, conn, actionGameMove, RequestPayload{Cell: &cell})
		require.Empty(t, resp.Error)
		require.NotNil(t, resp.Applied)
		require.True(t, *resp.Applied)
	}

	// Then: X is announced as the winner
	require.NotNil(t, resp.View.Winner)
	assert.Equal(t, [3]int{0, 1, 2}, resp.View.Winner.Line)
	assert.Equal(t, "Winner: X", resp.View.Status)
	assert.Equal(t, sessionID, resp.SessionID)

	// When: clicking after the win
	cell := 8
	_, resp = send(t, conn, actionGameMove, RequestPayload{Cell: &cell})

	// Then: the click is ignored
	require.NotNil(t, resp.Applied)
	assert.False(t, *resp.Applied)

	// When: jumping to move 2 and toggling the order
	move := 2
	_, resp = send(t, conn, actionGameJump, RequestPayload{Move: &move})
	require.Empty(t, resp.Error)
	assert.Equal(t, 2, resp.View.CurrentMove)

	_, resp = send(t, conn, actionHistoryToggle, RequestPayload{SessionID: sessionID})

	// Then: history is intact and listed newest first
	require.Empty(t, resp.Error)
	assert.False(t, resp.View.Ascending)
	assert.Len(t, resp.View.Moves, 6)
	assert.Equal(t, 5, resp.View.Moves[0].Move)
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	t.Run("Session required", func(t *testing.T) {
		cell := 0
		_, resp := send(t, conn, actionGameMove, RequestPayload{Cell: &cell})
		assert.Equal(t, "session_id is required", resp.Error)
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, resp := send(t, conn, actionSessionGet, RequestPayload{SessionID: "missing"})
		assert.Equal(t, "session not found", resp.Error)
	})

	t.Run("Unknown action", func(t *testing.T) {
		action, resp := send(t, conn, "game:resign", RequestPayload{})
		assert.Equal(t, "game:resign", action)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Jump out of range", func(t *testing.T) {
		_, resp := send(t, conn, actionSessionNew, RequestPayload{})
		require.Empty(t, resp.Error)

		move := 4
		_, resp = send(t, conn, actionGameJump, RequestPayload{Move: &move})
		assert.Equal(t, "move is out of history range", resp.Error)
	})

	t.Run("Cell out of board", func(t *testing.T) {
		cell := 12
		_, resp := send(t, conn, actionGameMove, RequestPayload{Cell: &cell})
		assert.Equal(t, "invalid cell index", resp.Error)
	})
}

func TestServer_OversizedMessage(t *testing.T) {
	conn := dial(t)

	// Given: a frame larger than the read limit
	body := `{"action":"session:get","payload":{"session_id":"` + strings.Repeat("x", maxMessageBytes) + `"}}`

	// When: the client sends it
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body)))

	// Then: the server drops the connection instead of answering
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout())
	}
}

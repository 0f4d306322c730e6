package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	maxMessageBytes = 4 << 10
)

type sessionUseCase interface {
	StartSession(ctx context.Context) (*entity.View, error)
	GetView(ctx context.Context, sessionID string) (*entity.View, error)

	RequestMove(ctx context.Context, sessionID string, cell int) (*entity.View, bool, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.View, error)
	ToggleOrder(ctx context.Context, sessionID string) (*entity.View, error)
}

type handlerFunc func(ctx context.Context, conn *client, payload RequestPayload) (ResponsePayload, error)

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// client is one open connection and the session it plays.
type client struct {
	conn      *websocket.Conn
	sessionID string
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSessionNew] = server.handleNewSession
	server.handlers[actionSessionGet] = server.handleGetSession
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameJump] = server.handleJump
	server.handlers[actionHistoryToggle] = server.handleToggle

	return server
}

// Handler serves the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	c := &client{conn: conn, sessionID: r.URL.Query().Get("session_id")}
	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		if ctx.Err() != nil {
			return nil
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendMessage(c, "error", ResponsePayload{Error: "malformed message"}); err != nil {
				return err
			}
			continue
		}

		if err = that.dispatch(ctx, c, &message); err != nil {
			return err
		}
	}
}

// dispatch runs the handler of message and writes its reply. Only write
// failures are returned.
func (that *Server) dispatch(ctx context.Context, c *client, message *Message) error {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return that.sendMessage(c, message.Action, ResponsePayload{Error: "unknown action"})
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return that.sendMessage(c, message.Action, ResponsePayload{Error: "malformed payload"})
		}
	}

	response, err := handler(ctx, c, payload)
	if err != nil {
		return that.sendErrorResponse(c, message.Action, err)
	}

	return that.sendMessage(c, message.Action, response)
}

func (that *Server) sendMessage(c *client, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = c.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

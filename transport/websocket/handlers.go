package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

var errSessionRequired = errors.New("session_id is required")

func (that *Server) handleNewSession(ctx context.Context, c *client, _ RequestPayload) (ResponsePayload, error) {
	view, err := that.sessions.StartSession(ctx)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to start session: %w", err)
	}

	c.sessionID = view.SessionID

	that.logger.Info("session started", "session_id", view.SessionID)

	return ResponsePayload{SessionID: view.SessionID, View: view}, nil
}

func (that *Server) handleGetSession(ctx context.Context, c *client, payload RequestPayload) (ResponsePayload, error) {
	sessionID, err := c.resolve(payload)
	if err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.sessions.GetView(ctx, sessionID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to get session: %w", err)
	}

	c.sessionID = sessionID

	return ResponsePayload{SessionID: sessionID, View: view}, nil
}

func (that *Server) handleMove(ctx context.Context, c *client, payload RequestPayload) (ResponsePayload, error) {
	sessionID, err := c.resolve(payload)
	if err != nil {
		return ResponsePayload{}, err
	}

	if payload.Cell == nil {
		return ResponsePayload{}, apperror.ErrInvalidCell
	}

	view, applied, err := that.sessions.RequestMove(ctx, sessionID, *payload.Cell)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to make move: %w", err)
	}

	return ResponsePayload{SessionID: sessionID, View: view, Applied: &applied}, nil
}

func (that *Server) handleJump(ctx context.Context, c *client, payload RequestPayload) (ResponsePayload, error) {
	sessionID, err := c.resolve(payload)
	if err != nil {
		return ResponsePayload{}, err
	}

	if payload.Move == nil {
		return ResponsePayload{}, apperror.ErrMoveOutOfRange
	}

	view, err := that.sessions.JumpTo(ctx, sessionID, *payload.Move)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to jump: %w", err)
	}

	return ResponsePayload{SessionID: sessionID, View: view}, nil
}

func (that *Server) handleToggle(ctx context.Context, c *client, payload RequestPayload) (ResponsePayload, error) {
	sessionID, err := c.resolve(payload)
	if err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.sessions.ToggleOrder(ctx, sessionID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to toggle order: %w", err)
	}

	return ResponsePayload{SessionID: sessionID, View: view}, nil
}

// sendErrorResponse replies with a client-facing message for err.
func (that *Server) sendErrorResponse(c *client, action string, err error) error {
	message := "internal error"

	switch {
	case errors.Is(err, errSessionRequired):
		message = errSessionRequired.Error()
	case errors.Is(err, apperror.ErrSessionNotFound):
		message = apperror.ErrSessionNotFound.Error()
	case errors.Is(err, apperror.ErrInvalidCell):
		message = apperror.ErrInvalidCell.Error()
	case errors.Is(err, apperror.ErrMoveOutOfRange):
		message = apperror.ErrMoveOutOfRange.Error()
	default:
		that.logger.Error("error processing message", "action", action, "error", err)
	}

	return that.sendMessage(c, action, ResponsePayload{Error: message})
}

// resolve picks the session from the payload, falling back to the one
// bound to the connection.
func (that *client) resolve(payload RequestPayload) (string, error) {
	if payload.SessionID != "" {
		return payload.SessionID, nil
	}

	if that.sessionID == "" {
		return "", errSessionRequired
	}

	return that.sessionID, nil
}

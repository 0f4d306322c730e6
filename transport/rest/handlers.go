package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/render"
)

type Handlers interface {
	StartSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	EndSession(w http.ResponseWriter, r *http.Request)

	RequestMove(w http.ResponseWriter, r *http.Request)
	JumpTo(w http.ResponseWriter, r *http.Request)
	ToggleOrder(w http.ResponseWriter, r *http.Request)

	BoardImage(w http.ResponseWriter, r *http.Request)
}

type sessionUseCase interface {
	StartSession(ctx context.Context) (*entity.View, error)
	GetView(ctx context.Context, sessionID string) (*entity.View, error)
	EndSession(ctx context.Context, sessionID string) error

	RequestMove(ctx context.Context, sessionID string, cell int) (*entity.View, bool, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.View, error)
	ToggleOrder(ctx context.Context, sessionID string) (*entity.View, error)
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type moveResponse struct {
	*entity.View
	Applied bool `json:"applied"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func NewHandlers(logger *slog.Logger, sessions sessionUseCase) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest_handlers"),
		sessions: sessions,
	}
}

func (that *handlers) StartSession(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.StartSession(r.Context())
	if err != nil {
		that.writeUseCaseError(w, "StartSession", err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.GetView(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeUseCaseError(w, "GetSession", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (that *handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeUseCaseError(w, "EndSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) RequestMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	view, applied, err := that.sessions.RequestMove(r.Context(), chi.URLParam(r, "sessionID"), *req.Cell)
	if err != nil {
		that.writeUseCaseError(w, "RequestMove", err)
		return
	}

	writeJSON(w, http.StatusOK, moveResponse{View: view, Applied: applied})
}

func (that *handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Move == nil {
		writeError(w, http.StatusBadRequest, "move is required")
		return
	}

	view, err := that.sessions.JumpTo(r.Context(), chi.URLParam(r, "sessionID"), *req.Move)
	if err != nil {
		that.writeUseCaseError(w, "JumpTo", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (that *handlers) ToggleOrder(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.ToggleOrder(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeUseCaseError(w, "ToggleOrder", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (that *handlers) BoardImage(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.GetView(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeUseCaseError(w, "BoardImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	render.SVG(w, view)
}

// writeUseCaseError maps domain errors onto HTTP statuses.
func (that *handlers) writeUseCaseError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
	case errors.Is(err, apperror.ErrInvalidCell):
		writeError(w, http.StatusBadRequest, apperror.ErrInvalidCell.Error())
	case errors.Is(err, apperror.ErrMoveOutOfRange):
		writeError(w, http.StatusBadRequest, apperror.ErrMoveOutOfRange.Error())
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

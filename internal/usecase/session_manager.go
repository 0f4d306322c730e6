package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// lockStripes bounds the number of mutexes whatever the number of sessions.
const lockStripes = 256

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionManager runs one engine transition per call against a stored session.
// Calls for the same session are serialised.
type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	locks [lockStripes]sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,

		now:   time.Now,
		newID: uuid.NewString,
	}
}

// StartSession creates a session at the empty board.
func (that *SessionManager) StartSession(ctx context.Context) (*entity.View, error) {
	session := entity.NewSession(that.newID(), that.now().UTC())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed create session: %w", err)
	}

	that.logger.Debug("session started", "session_id", session.ID)

	return tictactoe.BuildView(session.ID, session.State), nil
}

func (that *SessionManager) GetView(ctx context.Context, sessionID string) (*entity.View, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed get session: %w", err)
	}

	return tictactoe.BuildView(session.ID, session.State), nil
}

// RequestMove plays the next mark on cell. A click on an occupied cell or
// on a won board is not an error: the view is returned with applied false.
func (that *SessionManager) RequestMove(ctx context.Context, sessionID string, cell int) (*entity.View, bool, error) {
	if cell < 0 || cell >= entity.BoardSize {
		return nil, false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	session, applied, err := that.update(ctx, sessionID, func(state entity.State) (entity.State, bool) {
		return tictactoe.Play(state, cell)
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed make move: %w", err)
	}

	that.logger.Debug("move requested",
		"session_id", sessionID, "cell", cell, "applied", applied, "current_move", session.State.CurrentMove)

	return tictactoe.BuildView(session.ID, session.State), applied, nil
}

// JumpTo selects an existing history entry.
func (that *SessionManager) JumpTo(ctx context.Context, sessionID string, move int) (*entity.View, error) {
	session, applied, err := that.update(ctx, sessionID, func(state entity.State) (entity.State, bool) {
		return tictactoe.JumpTo(state, move)
	})
	if err != nil {
		return nil, fmt.Errorf("failed jump: %w", err)
	}

	if !applied {
		return nil, fmt.Errorf("%w: move %d of %d", apperror.ErrMoveOutOfRange, move, len(session.State.History))
	}

	return tictactoe.BuildView(session.ID, session.State), nil
}

func (that *SessionManager) ToggleOrder(ctx context.Context, sessionID string) (*entity.View, error) {
	session, _, err := that.update(ctx, sessionID, func(state entity.State) (entity.State, bool) {
		return tictactoe.ToggleOrder(state), true
	})
	if err != nil {
		return nil, fmt.Errorf("failed toggle order: %w", err)
	}

	return tictactoe.BuildView(session.ID, session.State), nil
}

func (that *SessionManager) EndSession(ctx context.Context, sessionID string) error {
	mu := that.lock(sessionID)
	defer mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed delete session: %w", err)
	}

	that.logger.Debug("session ended", "session_id", sessionID)

	return nil
}

// update loads the session, applies transition and stores the result when
// the transition changed something.
func (that *SessionManager) update(
	ctx context.Context,
	sessionID string,
	transition func(entity.State) (entity.State, bool),
) (*entity.Session, bool, error) {
	mu := that.lock(sessionID)
	defer mu.Unlock()

	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("failed get session: %w", err)
	}

	next, applied := transition(session.State)
	if !applied {
		return session, false, nil
	}

	session.State = next
	session.UpdatedAt = that.now().UTC()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, false, fmt.Errorf("failed update session: %w", err)
	}

	return session, true, nil
}

func (that *SessionManager) lock(sessionID string) *sync.Mutex {
	mu := that.lockFor(sessionID)
	mu.Lock()

	return mu
}

// lockFor returns the mutex serialising sessionID. Sessions sharing a stripe
// also wait for each other.
func (that *SessionManager) lockFor(sessionID string) *sync.Mutex {
	return &that.locks[stripe(sessionID)]
}

func stripe(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))

	return int(h.Sum32() % lockStripes)
}

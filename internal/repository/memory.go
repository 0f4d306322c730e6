package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const maxSweepInterval = time.Minute

type memoryRecord struct {
	data      []byte
	expiresAt time.Time
}

func (that memoryRecord) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// MemorySessionRepository keeps sessions inside the process. Sessions are
// stored encoded, so callers never share state with the store.
type MemorySessionRepository struct {
	records *xsync.MapOf[string, memoryRecord]
	ttl     time.Duration
	now     func() time.Time

	sweepEvery time.Duration
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *MemorySessionRepository {
	return &MemorySessionRepository{
		records: xsync.NewMapOf[string, memoryRecord](),
		ttl:     ttl,
		now:     now,

		sweepEvery: min(ttl, maxSweepInterval),
	}
}

// Start drops expired sessions until ctx is done. It returns at once when
// sessions never expire.
func (that *MemorySessionRepository) Start(ctx context.Context) error {
	if that.ttl <= 0 {
		return nil
	}

	ticker := time.NewTicker(that.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			that.sweep()
		}
	}
}

// sweep removes every expired record and reports how many were removed.
func (that *MemorySessionRepository) sweep() int {
	now := that.now()
	removed := 0

	that.records.Range(func(id string, _ memoryRecord) bool {
		if that.deleteExpired(id, now) {
			removed++
		}
		return true
	})

	return removed
}

func (that *MemorySessionRepository) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	record := memoryRecord{data: sessionJSON}
	if that.ttl > 0 {
		record.expiresAt = that.now().Add(that.ttl)
	}

	that.records.Store(session.ID, record)

	return nil
}

func (that *MemorySessionRepository) GetByID(_ context.Context, id string) (*entity.Session, error) {
	record, ok := that.load(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	var existingSession entity.Session
	if err := json.Unmarshal(record.data, &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *MemorySessionRepository) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.load(id); !ok {
		return apperror.ErrSessionNotFound
	}

	that.records.Delete(id)

	return nil
}

// load returns a live record and drops it when expired.
func (that *MemorySessionRepository) load(id string) (memoryRecord, bool) {
	now := that.now()

	record, ok := that.records.Load(id)
	if !ok {
		return memoryRecord{}, false
	}

	if record.expired(now) {
		that.deleteExpired(id, now)
		return memoryRecord{}, false
	}

	return record, true
}

// deleteExpired removes id only if its record is still expired, so a
// concurrent write that refreshed the ttl is kept.
func (that *MemorySessionRepository) deleteExpired(id string, now time.Time) bool {
	deleted := false

	that.records.Compute(id, func(record memoryRecord, loaded bool) (memoryRecord, bool) {
		deleted = loaded && record.expired(now)
		return record, !loaded || deleted
	})

	return deleted
}

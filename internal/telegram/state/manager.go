package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/survey"
)

// Manager owns the marshalling of survey sessions into storage records and
// serializes read-modify-write cycles per user. Events for different users
// proceed concurrently; events for the same user are processed one at a
// time so interleaved submissions cannot lose updates.
type Manager struct {
	storage Storage

	mu    sync.Mutex
	locks map[int64]*userLock
}

// userLock tracks the per-user mutex plus last use for cleanup.
type userLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	m := &Manager{
		storage: storage,
		locks:   make(map[int64]*userLock),
	}

	go m.cleanupIdleLocks()

	return m
}

// Lock acquires the per-user mutex and returns the unlock func.
func (m *Manager) Lock(userID int64) func() {
	m.mu.Lock()
	l, ok := m.locks[userID]
	if !ok {
		l = &userLock{}
		m.locks[userID] = l
	}
	l.lastUsed = time.Now()
	m.mu.Unlock()

	l.mu.Lock()
	return l.mu.Unlock
}

// GetSurvey loads and unmarshals the user's survey session.
func (m *Manager) GetSurvey(ctx context.Context, userID int64) (*survey.Session, error) {
	record, err := m.storage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get session from storage: %w", err)
	}

	var s survey.Session
	if err := json.Unmarshal(record.StateData, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}

	return &s, nil
}

// SaveSurvey marshals and stores the user's survey session.
func (m *Manager) SaveSurvey(ctx context.Context, userID int64, s *survey.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	record := &SessionRecord{
		UserID:    userID,
		StateData: data,
		CreatedAt: s.StartedAt,
		UpdatedAt: time.Now(),
	}

	if err := m.storage.Set(ctx, record); err != nil {
		return fmt.Errorf("save session to storage: %w", err)
	}

	return nil
}

// DeleteSurvey removes the user's survey session. Deleting a session that
// does not exist is not an error (cancel is unconditional).
func (m *Manager) DeleteSurvey(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete session from storage: %w", err)
	}

	return nil
}

// cleanupIdleLocks drops per-user mutexes untouched for an hour.
func (m *Manager) cleanupIdleLocks() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for userID, l := range m.locks {
			if now.Sub(l.lastUsed) > time.Hour {
				delete(m.locks, userID)
			}
		}
		m.mu.Unlock()
	}
}

// Package session loads a conceptarium once per dashboard session and hands
// out an immutable analysis context for it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/cache"
	"github.com/nidhogg/ideoscope/internal/source"
	"github.com/nidhogg/ideoscope/internal/thought"
)

// ErrNotFound is returned for an unknown or expired session id.
var ErrNotFound = errors.New("session not found")

// SnapshotStore persists fetched collections across restarts.
type SnapshotStore interface {
	Get(ctx context.Context, id string) (cache.Snapshot, bool, error)
	Put(ctx context.Context, id string, snap cache.Snapshot) error
	Delete(ctx context.Context, id string) error
}

// Session is one dashboard session. Its Context is fixed at fetch time:
// every metric of a session is computed against the same reference instant.
type Session struct {
	ID      string           `json:"id"`
	Source  string           `json:"source"`
	Context *thought.Context `json:"-"`
}

// Summary is the JSON view of a session.
func (s *Session) Summary() map[string]any {
	return map[string]any{
		"id":         s.ID,
		"source":     s.Source,
		"thoughts":   s.Context.Len(),
		"fetched_at": s.Context.Now,
		"timezone":   s.Context.Location.String(),
	}
}

// Manager creates and tracks sessions.
type Manager struct {
	src      source.Source
	store    SnapshotStore
	loc      *time.Location
	now      func() time.Time
	sessions map[string]*Session
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewManager creates a manager reading from src. store may be nil, in which
// case sessions only live in memory.
func NewManager(src source.Source, store SnapshotStore, loc *time.Location, logger *zap.Logger) *Manager {
	return &Manager{
		src:      src,
		store:    store,
		loc:      loc,
		now:      time.Now,
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// SetClock overrides the reference clock.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Create fetches the collection and opens a new session for it.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := uuid.New().String()
	snap, err := m.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s, err := m.open(id, snap)
	if err != nil {
		return nil, err
	}
	if m.store != nil {
		if err := m.store.Put(ctx, id, snap); err != nil {
			m.logger.Warn("snapshot not cached", zap.String("session", id), zap.Error(err))
		}
	}
	m.logger.Info("session created",
		zap.String("session", id),
		zap.String("source", m.src.Name()),
		zap.Int("thoughts", s.Context.Len()))
	return s, nil
}

// Get returns the session with id, restoring it from the snapshot store
// after a restart.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}
	if m.store == nil {
		return nil, ErrNotFound
	}

	snap, ok, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return m.open(id, snap)
}

// Refresh refetches the collection of an existing session.
func (m *Manager) Refresh(ctx context.Context, id string) (*Session, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}
	snap, err := m.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s, err := m.open(id, snap)
	if err != nil {
		return nil, err
	}
	if m.store != nil {
		if err := m.store.Put(ctx, id, snap); err != nil {
			m.logger.Warn("snapshot not cached", zap.String("session", id), zap.Error(err))
		}
	}
	return s, nil
}

// Delete forgets a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete session %s: %w", id, err)
		}
		return nil
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) fetch(ctx context.Context) (cache.Snapshot, error) {
	thoughts, err := m.src.Thoughts(ctx)
	if err != nil {
		return cache.Snapshot{}, err
	}
	return cache.Snapshot{FetchedAt: m.now(), Thoughts: thoughts}, nil
}

func (m *Manager) open(id string, snap cache.Snapshot) (*Session, error) {
	tc, err := thought.NewContext(snap.Thoughts, snap.FetchedAt, m.loc)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	s := &Session{ID: id, Source: m.src.Name(), Context: tc}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s, nil
}

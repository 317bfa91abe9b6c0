// Package screens keeps the query state of open list screens, one session
// per screen, and renders views of them against the record store.
package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"claimsview/internal/query"
	"claimsview/internal/records"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrScreenNotFound is returned for unknown or expired screen ids.
var ErrScreenNotFound = errors.New("screen not found")

// Backend is what a screen reads from: schemas, snapshots and refreshes.
// *records.Refresher implements it.
type Backend interface {
	Schema(resource string) (query.Schema, bool)
	Store() *records.Store
	Refresh(ctx context.Context, resources ...string) error
}

// Screen is one open list screen bound to a resource.
type Screen struct {
	ID        string           `json:"id"`
	Resource  string           `json:"resource"`
	State     query.QueryState `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
	LastSeen  time.Time        `json:"last_seen"`
}

// ScreenView is a screen together with the view derived from the current
// snapshot of its resource.
type ScreenView struct {
	Screen    Screen         `json:"screen"`
	View      query.View     `json:"view"`
	Status    records.Status `json:"status"`
	FetchedAt time.Time      `json:"fetched_at"`
	LastError string         `json:"last_error,omitempty"`
	TabCounts map[string]int `json:"tab_counts"`
}

// Manager owns every open screen.
type Manager struct {
	backend Backend
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	screens map[string]*Screen
}

// NewManager creates a manager whose screens expire after ttl without use.
// A ttl of zero disables expiry.
func NewManager(backend Backend, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		backend: backend,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		screens: make(map[string]*Screen),
	}
}

// Create opens a screen on resource with the schema's default state. If the
// resource was never loaded, it is fetched first; a failed fetch still
// opens the screen over an empty collection.
func (m *Manager) Create(ctx context.Context, resource string) (Screen, error) {
	schema, ok := m.backend.Schema(resource)
	if !ok {
		return Screen{}, fmt.Errorf("create screen on %s: %w", resource, records.ErrUnknownResource)
	}

	if m.backend.Store().Snapshot(resource).Status == records.StatusIdle {
		if err := m.backend.Refresh(ctx, resource); err != nil {
			m.logger.Warn("Initial fetch failed", zap.String("resource", resource), zap.Error(err))
		}
	}

	now := m.now()
	s := &Screen{
		ID:        uuid.NewString(),
		Resource:  resource,
		State:     schema.DefaultState(),
		CreatedAt: now,
		LastSeen:  now,
	}

	m.mu.Lock()
	m.screens[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("Screen opened", zap.String("id", s.ID), zap.String("resource", resource))
	return *s, nil
}

// Get returns a screen and marks it as used.
func (m *Manager) Get(id string) (Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.screens[id]
	if !ok {
		return Screen{}, fmt.Errorf("screen %s: %w", id, ErrScreenNotFound)
	}
	s.LastSeen = m.now()
	return *s, nil
}

// Apply applies a change to a screen's state. A tab change with Refetch set
// also reloads the resource; a failed reload keeps the previous snapshot.
func (m *Manager) Apply(ctx context.Context, id string, change Change) (Screen, error) {
	current, err := m.Get(id)
	if err != nil {
		return Screen{}, err
	}
	schema, ok := m.backend.Schema(current.Resource)
	if !ok {
		return Screen{}, fmt.Errorf("screen %s on %s: %w", id, current.Resource, records.ErrUnknownResource)
	}

	m.mu.Lock()
	s, ok := m.screens[id]
	if !ok {
		m.mu.Unlock()
		return Screen{}, fmt.Errorf("screen %s: %w", id, ErrScreenNotFound)
	}
	next, err := change.ApplyTo(schema, s.State)
	if err != nil {
		m.mu.Unlock()
		return Screen{}, err
	}
	s.State = next
	s.LastSeen = m.now()
	updated := *s
	m.mu.Unlock()

	if change.Tab != nil && change.Refetch {
		if err := m.backend.Refresh(ctx, updated.Resource); err != nil {
			m.logger.Warn("Tab refetch failed, keeping previous snapshot",
				zap.String("resource", updated.Resource),
				zap.Error(err))
		}
	}
	return updated, nil
}

// Tab switches the screen's tab, optionally refetching the resource.
func (m *Manager) Tab(ctx context.Context, id, tab string, refetch bool) (Screen, error) {
	return m.Apply(ctx, id, Change{Tab: &tab, Refetch: refetch})
}

// View renders a screen against the current snapshot of its resource.
func (m *Manager) View(id string) (ScreenView, error) {
	s, err := m.Get(id)
	if err != nil {
		return ScreenView{}, err
	}
	schema, ok := m.backend.Schema(s.Resource)
	if !ok {
		return ScreenView{}, fmt.Errorf("screen %s on %s: %w", id, s.Resource, records.ErrUnknownResource)
	}

	snap := m.backend.Store().Snapshot(s.Resource)
	return ScreenView{
		Screen:    s,
		View:      schema.Run(snap.Records, s.State),
		Status:    snap.Status,
		FetchedAt: snap.FetchedAt,
		LastError: snap.LastError,
		TabCounts: schema.CategoryCounts(snap.Records, schema.Categories),
	}, nil
}

// Export renders the screen's filtered and sorted collection as delimited
// text and returns it with its download filename.
func (m *Manager) Export(id string) (filename, body string, err error) {
	s, err := m.Get(id)
	if err != nil {
		return "", "", err
	}
	schema, ok := m.backend.Schema(s.Resource)
	if !ok {
		return "", "", fmt.Errorf("screen %s on %s: %w", id, s.Resource, records.ErrUnknownResource)
	}

	snap := m.backend.Store().Snapshot(s.Resource)
	return query.ExportFilename(s.Resource, m.now()), schema.Export(snap.Records, s.State), nil
}

// Delete closes a screen.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.screens[id]; !ok {
		return fmt.Errorf("screen %s: %w", id, ErrScreenNotFound)
	}
	delete(m.screens, id)
	return nil
}

// Len returns the number of open screens.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.screens)
}

// Sweep closes screens unused for longer than the TTL and returns how many
// were closed.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for id, s := range m.screens {
		if s.LastSeen.Before(cutoff) {
			delete(m.screens, id)
			closed++
		}
	}
	if closed > 0 {
		m.logger.Debug("Expired idle screens", zap.Int("closed", closed))
	}
	return closed
}

// RunSweeper sweeps on every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

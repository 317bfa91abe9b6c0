// Package records holds the last collections fetched from the claims backend
// and keeps them fresh.
package records

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"claimsview/internal/query"
)

var (
	// ErrStaleResponse is returned when a fetch completes after a newer one
	// was dispatched for the same resource. Its result is discarded.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrRecordNotFound is returned by Update when no record has the id.
	ErrRecordNotFound = errors.New("record not found")
)

// Status is the load state of one resource.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
)

// Snapshot is a consistent, read-only view of one resource.
type Snapshot struct {
	Resource  string         `json:"resource"`
	Records   []query.Record `json:"-"`
	Count     int            `json:"count"`
	FetchedAt time.Time      `json:"fetched_at"`
	Seq       uint64         `json:"seq"`
	Status    Status         `json:"status"`
	LastError string         `json:"last_error,omitempty"`
}

type entry struct {
	snap       Snapshot
	dispatched uint64
	loaded     bool
}

// Store keeps one snapshot per resource. Snapshots are replaced wholesale;
// readers always see either the old or the new collection, never a mix.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (s *Store) entryLocked(resource string) *entry {
	e, ok := s.entries[resource]
	if !ok {
		e = &entry{snap: Snapshot{Resource: resource, Status: StatusIdle, Records: []query.Record{}}}
		s.entries[resource] = e
	}
	return e
}

// Begin dispatches a fetch for resource and returns its sequence number.
// Only the latest dispatched sequence may commit.
func (s *Store) Begin(resource string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(resource)
	e.dispatched++
	e.snap.Status = StatusLoading
	return e.dispatched
}

// Commit replaces the resource's records with the result of fetch seq.
// Results of superseded fetches are dropped with ErrStaleResponse.
func (s *Store) Commit(resource string, seq uint64, records []query.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(resource)
	if seq != e.dispatched || seq <= e.snap.Seq {
		return fmt.Errorf("commit %s seq %d (latest %d): %w", resource, seq, e.dispatched, ErrStaleResponse)
	}

	cloned := slices.Clone(records)
	if cloned == nil {
		cloned = []query.Record{}
	}
	e.snap = Snapshot{
		Resource:  resource,
		Records:   cloned,
		Count:     len(cloned),
		FetchedAt: s.now(),
		Seq:       seq,
		Status:    StatusReady,
	}
	e.loaded = true
	return nil
}

// Fail records a failed fetch. The previous records stay in place.
func (s *Store) Fail(resource string, seq uint64, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(resource)
	if seq != e.dispatched {
		return fmt.Errorf("fail %s seq %d (latest %d): %w", resource, seq, e.dispatched, ErrStaleResponse)
	}

	if cause != nil {
		e.snap.LastError = cause.Error()
	}
	if e.loaded {
		e.snap.Status = StatusReady
	} else {
		e.snap.Status = StatusIdle
	}
	return nil
}

// Snapshot returns the current snapshot of resource.
func (s *Store) Snapshot(resource string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[resource]
	if !ok {
		return Snapshot{Resource: resource, Status: StatusIdle, Records: []query.Record{}}
	}
	return e.snap
}

// Resources lists every resource the store has seen, sorted.
func (s *Store) Resources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Update swaps in a record that the backend has just accepted, matched on
// idField. The collection is copied, so earlier snapshots are unaffected.
func (s *Store) Update(resource, idField string, record query.Record) error {
	return s.UpdateAt(resource, 0, idField, record)
}

// UpdateAt is Update guarded by the snapshot sequence the caller read the
// record from. If the snapshot was replaced since, it fails with
// ErrStaleResponse. A seq of 0 skips the check.
func (s *Store) UpdateAt(resource string, seq uint64, idField string, record query.Record) error {
	id := record.String(idField)
	if id == "" {
		return fmt.Errorf("update %s: missing %q: %w", resource, idField, ErrRecordNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(resource)
	if seq != 0 && seq != e.snap.Seq {
		return fmt.Errorf("update %s/%s at seq %d (current %d): %w", resource, id, seq, e.snap.Seq, ErrStaleResponse)
	}
	idx := slices.IndexFunc(e.snap.Records, func(r query.Record) bool {
		return r.String(idField) == id
	})
	if idx < 0 {
		return fmt.Errorf("update %s/%s: %w", resource, id, ErrRecordNotFound)
	}

	next := slices.Clone(e.snap.Records)
	next[idx] = record
	e.snap.Records = next
	return nil
}

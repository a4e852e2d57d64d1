// Package monitor owns the re-fetch policy the parsing core deliberately
// does not: a poller that refreshes the vehicle feed and the configured
// arrival boards on an interval, and a snapshot store that only ever exposes
// fully-completed results.
package monitor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/coastaltransit/busboard/board"
	"github.com/coastaltransit/busboard/feed"
)

// Store holds the latest committed refresh results. Commits carry a
// generation ticket so a slow in-flight cycle can never overwrite a newer,
// already-committed result.
type Store struct {
	gen atomic.Uint64

	mu        sync.RWMutex
	committed uint64
	vehicles  []feed.VehicleLocation
	arrivals  map[string][]board.Prediction
	updatedAt time.Time
}

func NewStore() *Store {
	return &Store{arrivals: map[string][]board.Prediction{}}
}

// NextGeneration issues the ticket for a cycle about to start.
func (s *Store) NextGeneration() uint64 { return s.gen.Add(1) }

// Commit publishes a completed cycle. It reports false, leaving the store
// untouched, when a cycle with a newer ticket already committed.
func (s *Store) Commit(gen uint64, vehicles []feed.VehicleLocation, arrivals map[string][]board.Prediction, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.committed {
		return false
	}
	s.committed = gen
	s.vehicles = vehicles
	s.arrivals = arrivals
	s.updatedAt = at
	return true
}

// Vehicles returns a copy of the committed fleet.
func (s *Store) Vehicles() []feed.VehicleLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]feed.VehicleLocation, len(s.vehicles))
	copy(out, s.vehicles)
	return out
}

// Arrivals returns a copy of the committed predictions for a stop. The
// second return distinguishes "stop unknown or failed this cycle" from an
// empty board.
func (s *Store) Arrivals(stopCode string) ([]board.Prediction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	preds, ok := s.arrivals[stopCode]
	if !ok {
		return nil, false
	}
	out := make([]board.Prediction, len(preds))
	copy(out, preds)
	return out, true
}

// UpdatedAt returns the commit time of the current snapshot, zero before the
// first commit.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

package handler

import (
	"sync/atomic"
)

// Stats counts what a handler did with the entries it was given.
// All methods are safe for concurrent use.
type Stats struct {
	delivered atomic.Uint64
	failed    atomic.Uint64
	filtered  atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDelivered counts an entry that reached its destination.
func (s *Stats) IncrementDelivered() { s.delivered.Add(1) }

// IncrementFailed counts an entry whose delivery failed.
func (s *Stats) IncrementFailed() { s.failed.Add(1) }

// IncrementFiltered counts an entry rejected by the handler's filter.
func (s *Stats) IncrementFiltered() { s.filtered.Add(1) }

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Delivered uint64
	Failed    uint64
	Filtered  uint64
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
		Filtered:  s.filtered.Load(),
	}
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	s.delivered.Store(0)
	s.failed.Store(0)
	s.filtered.Store(0)
}

// StatsProvider is implemented by handlers that keep Stats.
type StatsProvider interface {
	Name() string
	Stats() *Stats
}

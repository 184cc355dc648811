package handler

import (
	"time"

	"github.com/philipp01105/nlog-invoke/core"
)

// Handler defines the interface for log handlers
type Handler interface {
	// Handle processes a log entry. The entry must not be retained after
	// Handle returns.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// FastHandler is an optional interface that handlers can implement
// to process log data directly without requiring an Entry from the pool.
type FastHandler interface {
	HandleLog(t time.Time, level core.Level, logger, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error
}

// Recycler is implemented by handlers that are done with an entry once
// Handle returns, which lets the caller put it back into the pool.
type Recycler interface {
	CanRecycleEntry() bool
}

// canRecycle reports whether h declares that it never retains entries.
func canRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}

package handler

import (
	"github.com/philipp01105/nlog-invoke/core"
)

// Filter decides whether a handler should process an entry. A nil Filter
// accepts everything.
type Filter interface {
	Accept(entry *core.Entry) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(entry *core.Entry) bool

// Accept calls f(entry).
func (f FilterFunc) Accept(entry *core.Entry) bool { return f(entry) }

// LevelFilter accepts entries at or above Min.
type LevelFilter struct {
	Min core.Level
}

// Accept reports whether entry.Level >= Min.
func (f LevelFilter) Accept(entry *core.Entry) bool {
	return entry.Level >= f.Min
}

// AllOf accepts an entry only when every filter does. Nil filters are skipped.
func AllOf(filters ...Filter) Filter {
	return FilterFunc(func(entry *core.Entry) bool {
		for _, f := range filters {
			if f != nil && !f.Accept(entry) {
				return false
			}
		}
		return true
	})
}

// Accepts applies f to entry, treating a nil filter as accept-all.
func Accepts(f Filter, entry *core.Entry) bool {
	return f == nil || f.Accept(entry)
}

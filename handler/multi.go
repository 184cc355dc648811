package handler

import (
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlog-invoke/core"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers     []Handler
	fastHandlers []FastHandler // nil where the child is not a FastHandler
	allFast      bool
	recycleEntry bool
}

// NewMultiHandler creates a new multi-handler. Nil handlers are dropped.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{allFast: true, recycleEntry: true}
	for _, h := range handlers {
		if h == nil {
			continue
		}
		fh, _ := h.(FastHandler)
		if fh == nil {
			m.allFast = false
		}
		if !canRecycle(h) {
			m.recycleEntry = false
		}
		m.handlers = append(m.handlers, h)
		m.fastHandlers = append(m.fastHandlers, fh)
	}
	return m
}

// HandleLog processes log data directly. When every child is a FastHandler
// no Entry is taken from the pool. Every child is called even if an earlier
// one fails; the failures are combined.
func (h *MultiHandler) HandleLog(t time.Time, level core.Level, logger, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if h.allFast {
		var err error
		for _, fh := range h.fastHandlers {
			err = multierr.Append(err, fh.HandleLog(t, level, logger, msg, loggerFields, callFields, caller))
		}
		return err
	}

	entry := core.GetEntry()
	entry.Time = t
	entry.Level = level
	entry.Logger = logger
	entry.Message = msg
	entry.Caller = caller
	entry.Fields = append(entry.Fields, loggerFields...)
	entry.Fields = append(entry.Fields, callFields...)

	var err error
	for i, child := range h.handlers {
		if fh := h.fastHandlers[i]; fh != nil {
			err = multierr.Append(err, fh.HandleLog(t, level, logger, msg, loggerFields, callFields, caller))
		} else {
			err = multierr.Append(err, child.Handle(entry))
		}
	}
	if h.recycleEntry {
		core.PutEntry(entry)
	}
	return err
}

// Handle sends entry to every child and combines their errors.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Handle(entry))
	}
	return err
}

// CanRecycleEntry reports whether every child releases entries when Handle returns.
func (h *MultiHandler) CanRecycleEntry() bool {
	return h.recycleEntry
}

// Close closes all handlers and combines their errors.
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}

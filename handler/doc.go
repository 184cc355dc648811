// Package handler defines the Handler interface that loggers dispatch
// entries to, together with the pieces handlers share.
//
// A Handler receives each *core.Entry synchronously and returns an error
// when it could not deal with it. Handlers that never keep an entry past
// Handle implement Recycler so the logger can return entries to the pool.
// FastHandler is an optional shortcut that skips the pool entirely.
//
// Also provided:
//
//   - Filter, with LevelFilter and AllOf, which handlers consult before
//     doing any work.
//   - Stats, per-handler delivered/failed/filtered counters, exported to
//     Prometheus by StatsCollector.
//   - MultiHandler, which fans one entry out to several children and
//     combines their errors.
//   - SlogHandler, which lets any Handler back a log/slog Logger.
//
// The invokehandler subpackage contains the handler that hands formatted
// text to a func or method chosen by name.
package handler

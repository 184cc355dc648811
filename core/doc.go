// Package core defines the event model shared by loggers, handlers and
// formatters.
//
// An Entry is one log event: its time, Level, the name of the emitting
// logger, the message, structured Fields and optional caller information.
// Handlers receive an *Entry and must not retain it after Handle returns;
// the logger recycles entries through GetEntry/PutEntry.
//
// Field packs common value types into fixed-size slots (Int64, Float64)
// so that ints, bools, times and durations never allocate. The Any slot
// is a fallback and will allocate.
package core

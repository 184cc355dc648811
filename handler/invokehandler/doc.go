// Package invokehandler provides a Handler that passes each formatted log
// line, as a single string, to a func or method picked by name.
//
// The target is described by a class name from an invoke.Registry, an
// optional instance factory on that class, and the name of the append
// method:
//
//	invoke.MustRegister(invoke.Class{
//	    Name:  "audit.Trail",
//	    Funcs: map[string]any{"append": trail.Record},
//	})
//
//	h := invokehandler.Create(map[string]any{
//	    "name":  "audit",
//	    "class": "audit.Trail",
//	})
//
// The binding strategy is chosen once, in New. Class-level funcs and cached
// instances are bound to an invoke.CachedInvoker; with cacheInstance set to
// false an invoke.ReacquireInvoker calls the factory for every entry.
//
// Create never returns an error. Problems are written to the status logger
// and a nil *Handler is returned. Use New to get the error instead.
package invokehandler

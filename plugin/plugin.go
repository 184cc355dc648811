// Package plugin maps configuration element names to handler factories, the
// way a host framework turns an element such as <Invoke name="audit" .../>
// into a running handler.
package plugin

import (
	"errors"

	"github.com/philipp01105/nlog-invoke/handler"
	"github.com/philipp01105/nlog-invoke/handler/invokehandler"
)

const (
	// InvokeElement is the element name of the invoke handler.
	InvokeElement = "Invoke"
	// CustomElement is an alias of InvokeElement kept for older configurations.
	CustomElement = "Custom"
)

var (
	// ErrPluginNotFound is reported to the status logger when Build is asked
	// for an element with no registered factory.
	ErrPluginNotFound = errors.New("plugin not found")
	// ErrDuplicatePlugin is returned by RegisterFactory when the element
	// name is already taken.
	ErrDuplicatePlugin = errors.New("duplicate plugin")
	// ErrInvalidConfigFormat is returned for an empty element name or nil
	// factory, and by BuildAll when conf is not a map of attribute lists.
	ErrInvalidConfigFormat = errors.New("invalid config format")
	// ErrBuildFailed wraps each element BuildAll could not build.
	ErrBuildFailed = errors.New("plugin build failed")
)

// Factory builds a handler from element attributes. It reports its own
// problems to the status logger and returns nil when it cannot build one.
type Factory func(attrs map[string]any) handler.Handler

// InvokeFactory returns a Factory for invoke handlers. The options are
// applied to every handler it builds.
func InvokeFactory(opts ...invokehandler.Option) Factory {
	return func(attrs map[string]any) handler.Handler {
		h := invokehandler.Create(attrs, opts...)
		if h == nil {
			return nil
		}
		return h
	}
}

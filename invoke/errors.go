package invoke

import (
	"errors"
	"fmt"
)

var (
	// ErrClassNotFound is returned when a class name has no registry entry.
	ErrClassNotFound = errors.New("invoke: class not registered")
	// ErrDuplicateClass is returned when a class name is registered twice.
	ErrDuplicateClass = errors.New("invoke: class already registered")
	// ErrMethodNotFound is returned when no member with the requested name exists.
	ErrMethodNotFound = errors.New("invoke: method not found")
	// ErrBadSignature is returned when a member exists but cannot be called
	// as an append method or an instance factory.
	ErrBadSignature = errors.New("invoke: method has wrong signature")
	// ErrNilInstance is returned when an instance is required but absent.
	ErrNilInstance = errors.New("invoke: nil instance")
	// ErrMissingAttribute is returned when a required configuration value is empty.
	ErrMissingAttribute = errors.New("invoke: required attribute missing")
	// ErrPanic wraps a value recovered from a panicking target.
	ErrPanic = errors.New("invoke: target panicked")
)

// ConfigurationError reports a failure to bind a target while a handler is
// being built. It is terminal for that handler.
type ConfigurationError struct {
	Class  string
	Method string
	Err    error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Class != "" && e.Method != "":
		return fmt.Sprintf("configure %s.%s: %v", e.Class, e.Method, e.Err)
	case e.Class != "":
		return fmt.Sprintf("configure %s: %v", e.Class, e.Err)
	default:
		return fmt.Sprintf("configure: %v", e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DeliveryError reports a failed attempt to hand text to the target. Errors
// returned by the target, panics and reflective call failures all surface as
// a DeliveryError.
type DeliveryError struct {
	Method string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %v", e.Method, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func configErr(class, method string, err error) *ConfigurationError {
	return &ConfigurationError{Class: class, Method: method, Err: err}
}

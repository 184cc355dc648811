package invoke

import (
	"fmt"
)

// ReacquireInvoker asks its factory for a fresh instance on every Append and
// resolves the append method against that instance's runtime type, since the
// factory may hand out values of different concrete types. Nothing is shared
// between calls, so concurrent Appends do not need locking.
type ReacquireInvoker struct {
	factory    *Method
	appendName string
}

// NewReacquireInvoker returns an invoker that calls factory once per Append.
func NewReacquireInvoker(factory *Method, appendName string) (*ReacquireInvoker, error) {
	if factory == nil {
		return nil, configErr("", appendName, fmt.Errorf("%w: instance factory", ErrMissingAttribute))
	}
	if factory.kind != factoryKind {
		return nil, configErr("", factory.name, fmt.Errorf("%w: not an instance factory", ErrBadSignature))
	}
	if appendName == "" {
		return nil, configErr("", factory.name, fmt.Errorf("%w: append method name", ErrMissingAttribute))
	}
	return &ReacquireInvoker{factory: factory, appendName: appendName}, nil
}

// Factory returns the qualified name of the instance factory.
func (r *ReacquireInvoker) Factory() string { return r.factory.name }

// Append acquires an instance, resolves the append method on it and calls it.
// A nil instance is not rejected up front; it fails at method resolution.
func (r *ReacquireInvoker) Append(text string) error {
	instance, err := r.factory.Produce()
	if err != nil {
		return &DeliveryError{Method: r.factory.name, Err: err}
	}

	m, err := InstanceAppend(instance, r.appendName)
	if err != nil {
		return &DeliveryError{Method: r.appendName, Err: err}
	}

	if err := m.appendText(instance, text); err != nil {
		return &DeliveryError{Method: m.name, Err: err}
	}
	return nil
}

package invoke

import (
	"fmt"
	"reflect"
)

// CachedInvoker calls one resolved append method on one fixed instance, or
// with no instance at all when the method is class-level. Its state never
// changes after construction, so Append may be called concurrently.
type CachedInvoker struct {
	instance reflect.Value
	method   *Method
}

// NewCachedInvoker binds method to instance. An invalid instance means the
// method is invoked without one; that is only accepted for class-level funcs.
func NewCachedInvoker(instance reflect.Value, method *Method) (*CachedInvoker, error) {
	if method == nil {
		return nil, configErr("", "", fmt.Errorf("%w: append method", ErrMissingAttribute))
	}
	if method.kind != appendKind {
		return nil, configErr("", method.name, fmt.Errorf("%w: not an append method", ErrBadSignature))
	}

	if !method.receiver {
		return &CachedInvoker{method: method}, nil
	}
	instance = concrete(instance)
	if !instance.IsValid() {
		return nil, configErr("", method.name, ErrNilInstance)
	}
	return &CachedInvoker{instance: instance, method: method}, nil
}

// Method returns the qualified name of the bound append method.
func (c *CachedInvoker) Method() string { return c.method.name }

// Append passes text to the bound method.
func (c *CachedInvoker) Append(text string) error {
	if err := c.method.appendText(c.instance, text); err != nil {
		return &DeliveryError{Method: c.method.name, Err: err}
	}
	return nil
}

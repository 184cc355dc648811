package invoke

import (
	"fmt"
	"reflect"
)

type methodKind uint8

const (
	appendKind methodKind = iota + 1
	factoryKind
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Method is a resolved, signature-checked handle to an append method or an
// instance factory. A Method is immutable and safe for concurrent use.
type Method struct {
	name     string
	kind     methodKind
	fn       reflect.Value
	param    reflect.Type // string-kinded parameter of an append method
	receiver bool         // fn expects the instance as its first argument
	hasErr   bool         // last result is an error
}

// Name returns the qualified name the method was resolved as.
func (m *Method) Name() string { return m.name }

// NeedsInstance reports whether the method must be called on an instance.
func (m *Method) NeedsInstance() bool { return m.receiver }

func newAppendMethod(name string, ft reflect.Type, fn reflect.Value, receiver bool) (*Method, error) {
	first := 0
	if receiver {
		first = 1
	}
	if ft.IsVariadic() || ft.NumIn() != first+1 || ft.In(first).Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s is %s, want one string parameter", ErrBadSignature, name, ft)
	}

	m := &Method{name: name, kind: appendKind, fn: fn, param: ft.In(first), receiver: receiver}
	switch {
	case ft.NumOut() == 0:
	case ft.NumOut() == 1 && ft.Out(0) == errorType:
		m.hasErr = true
	default:
		return nil, fmt.Errorf("%w: %s is %s, want no result or a single error", ErrBadSignature, name, ft)
	}
	return m, nil
}

func newFactoryMethod(name string, fn reflect.Value) (*Method, error) {
	ft := fn.Type()
	if ft.NumIn() != 0 {
		return nil, fmt.Errorf("%w: %s is %s, want no parameters", ErrBadSignature, name, ft)
	}

	m := &Method{name: name, kind: factoryKind, fn: fn}
	switch {
	case ft.NumOut() == 1 && ft.Out(0) != errorType:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		m.hasErr = true
	default:
		return nil, fmt.Errorf("%w: %s is %s, want a single result optionally followed by an error", ErrBadSignature, name, ft)
	}
	return m, nil
}

// InstanceAppend resolves an append method by name on the runtime type of
// instance. Only the method set of that exact type is searched.
func InstanceAppend(instance reflect.Value, name string) (*Method, error) {
	instance = concrete(instance)
	if isNil(instance) {
		return nil, fmt.Errorf("%w: cannot resolve %s", ErrNilInstance, name)
	}

	t := instance.Type()
	rm, ok := t.MethodByName(name)
	if !ok {
		if exp := exportedName(name); exp != name {
			rm, ok = t.MethodByName(exp)
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %s", ErrMethodNotFound, t, name)
	}
	return newAppendMethod(t.String()+"."+rm.Name, rm.Type, rm.Func, true)
}

// Produce calls an instance factory and returns the concrete value it produced.
// A nil result is returned as is; callers decide whether that is acceptable.
func (m *Method) Produce() (reflect.Value, error) {
	if m.kind != factoryKind {
		return reflect.Value{}, fmt.Errorf("%w: %s is not an instance factory", ErrBadSignature, m.name)
	}
	out, err := m.call(nil)
	if err != nil {
		return reflect.Value{}, err
	}
	return concrete(out[0]), nil
}

func (m *Method) appendText(instance reflect.Value, text string) error {
	args := make([]reflect.Value, 0, 2)
	if m.receiver {
		if !instance.IsValid() {
			return fmt.Errorf("%w: %s needs an instance", ErrNilInstance, m.name)
		}
		args = append(args, instance)
	}
	args = append(args, reflect.ValueOf(text).Convert(m.param))
	_, err := m.call(args)
	return err
}

func (m *Method) call(args []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			if re, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanic, re)
			} else {
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}
	}()

	out = m.fn.Call(args)
	if m.hasErr {
		if last := out[len(out)-1]; !last.IsNil() {
			return out, last.Interface().(error)
		}
	}
	return out, nil
}

// concrete unwraps interface values down to the dynamic value they hold.
func concrete(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// IsNil reports whether v holds no usable instance: an invalid value, or a
// nil pointer, map, slice, func, channel or interface.
func IsNil(v reflect.Value) bool {
	return isNil(concrete(v))
}

package invoke

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Class is a named set of package-level funcs that stand in for the static
// members of a class. Funcs may hold append methods (func(string) or
// func(string) error) and instance factories (func() T or func() (T, error)).
type Class struct {
	Name  string
	Funcs map[string]any
}

// class is the validated, immutable form of a registered Class.
type class struct {
	name  string
	funcs map[string]reflect.Value
}

// lookup finds a member by its configured name, falling back to the exported
// spelling so that "append" binds to "Append".
func (c *class) lookup(name string) (reflect.Value, string, bool) {
	if fn, ok := c.funcs[name]; ok {
		return fn, name, true
	}
	if exp := exportedName(name); exp != name {
		if fn, ok := c.funcs[exp]; ok {
			return fn, exp, true
		}
	}
	return reflect.Value{}, "", false
}

// Registry maps class names to their members. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*class
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*class)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when no other is configured.
func Default() *Registry {
	return defaultRegistry
}

// Register adds c to the registry. Every entry in c.Funcs must be a non-nil func.
func (r *Registry) Register(c Class) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty class name", ErrMissingAttribute)
	}

	funcs := make(map[string]reflect.Value, len(c.Funcs))
	for name, f := range c.Funcs {
		v := reflect.ValueOf(f)
		if v.Kind() != reflect.Func || v.IsNil() {
			return configErr(c.Name, name, fmt.Errorf("%w: %T is not a func", ErrBadSignature, f))
		}
		funcs[name] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[c.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
	}
	r.classes[c.Name] = &class{name: c.Name, funcs: funcs}
	return nil
}

// MustRegister is like Register but panics on error. It is meant for init functions.
func (r *Registry) MustRegister(c Class) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Unregister removes a class and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.classes[name]
	delete(r.classes, name)
	return ok
}

// Names returns the registered class names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *Registry) class(name string) (*class, error) {
	r.mu.RLock()
	c, ok := r.classes[name]
	r.mu.RUnlock()
	if !ok {
		return nil, configErr(name, "", ErrClassNotFound)
	}
	return c, nil
}

// StaticAppend resolves a class-level append func: one string parameter and
// either no result or a single error.
func (r *Registry) StaticAppend(className, name string) (*Method, error) {
	c, err := r.class(className)
	if err != nil {
		return nil, err
	}
	fn, found, ok := c.lookup(name)
	if !ok {
		return nil, configErr(className, name, ErrMethodNotFound)
	}
	m, err := newAppendMethod(c.name+"."+found, fn.Type(), fn, false)
	if err != nil {
		return nil, configErr(className, name, err)
	}
	return m, nil
}

// StaticFactory resolves a class-level instance factory: no parameters and
// either one result or a result followed by an error.
func (r *Registry) StaticFactory(className, name string) (*Method, error) {
	c, err := r.class(className)
	if err != nil {
		return nil, err
	}
	fn, found, ok := c.lookup(name)
	if !ok {
		return nil, configErr(className, name, ErrMethodNotFound)
	}
	m, err := newFactoryMethod(c.name+"."+found, fn)
	if err != nil {
		return nil, configErr(className, name, err)
	}
	return m, nil
}

// Register adds c to the default registry.
func Register(c Class) error {
	return defaultRegistry.Register(c)
}

// MustRegister adds c to the default registry and panics on error.
func MustRegister(c Class) {
	defaultRegistry.MustRegister(c)
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/nlog-invoke/handler"
	"github.com/philipp01105/nlog-invoke/status"
)

// Manager holds the handler factories known to the framework.
type Manager struct {
	factories map[string]Factory
	lock      sync.RWMutex
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{factories: make(map[string]Factory)}
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide Manager with the invoke handler
// registered under InvokeElement and CustomElement.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
		f := InvokeFactory()
		_ = defaultManager.RegisterFactory(InvokeElement, f)
		_ = defaultManager.RegisterFactory(CustomElement, f)
	})
	return defaultManager
}

// RegisterFactory registers f under element. Each element name may be
// registered once.
func (m *Manager) RegisterFactory(element string, f Factory) error {
	if element == "" || f == nil {
		return fmt.Errorf("%w: element name and factory are required", ErrInvalidConfigFormat)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.factories[element]; exists {
		return fmt.Errorf("%w: element '%s'", ErrDuplicatePlugin, element)
	}
	m.factories[element] = f
	return nil
}

// Elements returns the registered element names in sorted order.
func (m *Manager) Elements() []string {
	m.lock.RLock()
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	m.lock.RUnlock()
	sort.Strings(names)
	return names
}

// Build creates one handler for element. Like the factories themselves it
// reports failures to the status logger and returns nil.
func (m *Manager) Build(element string, attrs map[string]any) handler.Handler {
	m.lock.RLock()
	f, ok := m.factories[element]
	m.lock.RUnlock()

	if !ok {
		status.Error("plugin: cannot build element", ErrPluginNotFound, zap.String("element", element))
		return nil
	}
	return f(attrs)
}

// BuildAll creates a handler for every entry of conf, which maps element
// names to lists of attribute maps:
//
//	{"Invoke": [{"name": "audit", "class": "audit.Trail"}, ...]}
//
// Elements are processed in sorted order. Handlers that could be built are
// returned even when others failed; the failures are combined into the error.
func (m *Manager) BuildAll(conf map[string]any) ([]handler.Handler, error) {
	var elements map[string][]map[string]any
	if err := mapstructure.Decode(conf, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfigFormat, err)
	}

	names := make([]string, 0, len(elements))
	for name := range elements {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		handlers []handler.Handler
		errs     error
	)
	for _, name := range names {
		for i, attrs := range elements[name] {
			h := m.Build(name, attrs)
			if h == nil {
				errs = multierr.Append(errs, fmt.Errorf("%w: element '%s' #%d (name %v)", ErrBuildFailed, name, i, attrs["name"]))
				continue
			}
			handlers = append(handlers, h)
		}
	}
	return handlers, errs
}

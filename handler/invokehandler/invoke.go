package invokehandler

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/philipp01105/nlog-invoke/core"
	"github.com/philipp01105/nlog-invoke/formatter"
	"github.com/philipp01105/nlog-invoke/handler"
	"github.com/philipp01105/nlog-invoke/invoke"
	"github.com/philipp01105/nlog-invoke/status"
)

// Handler formats each entry and hands the text to a func or method that
// was chosen by name when the handler was built.
type Handler struct {
	name             string
	invoker          invoke.Invoker
	ignoreExceptions bool
	filter           handler.Filter
	formatter        formatter.Formatter
	stats            *handler.Stats
}

var (
	_ handler.Handler       = (*Handler)(nil)
	_ handler.Recycler      = (*Handler)(nil)
	_ handler.StatsProvider = (*Handler)(nil)
)

// AppendError is returned by Handle when delivery fails and failures are
// not being ignored.
type AppendError struct {
	Handler string
	Err     error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("invoke handler %s: %v", e.Handler, e.Err)
}

func (e *AppendError) Unwrap() error { return e.Err }

// New binds cfg to its target and returns the handler. Every failure is an
// *invoke.ConfigurationError.
//
// The zero values of the flags select the defaults: the instance is cached
// and delivery failures are reported, not returned.
//
// Binding rules:
//   - without AppendInstance, Append is looked up as a class-level func;
//   - with AppendInstance, the factory runs now, must return a non-nil
//     value, and Append is looked up on that value's type;
//   - with AppendInstance and NoCacheInstance, the factory and the method
//     lookup both run again for every entry.
func New(cfg Config) (*Handler, error) {
	if cfg.Name == "" {
		return nil, &invoke.ConfigurationError{Class: cfg.ClassName, Err: fmt.Errorf("%w: handler must specify a name", invoke.ErrMissingAttribute)}
	}
	if cfg.ClassName == "" {
		return nil, &invoke.ConfigurationError{Err: fmt.Errorf("%w: handler %s must specify a class", invoke.ErrMissingAttribute, cfg.Name)}
	}

	reg := cfg.Registry
	if reg == nil {
		reg = invoke.Default()
	}
	appendName := cfg.Append
	if appendName == "" {
		appendName = DefaultAppend
	}
	layout := cfg.Formatter
	if layout == nil {
		layout = formatter.NewDefaultFormatter()
	}

	inv, err := bind(reg, cfg.ClassName, appendName, cfg.AppendInstance, !cfg.NoCacheInstance)
	if err != nil {
		return nil, err
	}

	return &Handler{
		name:             cfg.Name,
		invoker:          inv,
		ignoreExceptions: !cfg.PropagateExceptions,
		filter:           cfg.Filter,
		formatter:        layout,
		stats:            handler.NewStats(),
	}, nil
}

func bind(reg *invoke.Registry, className, appendName, factoryName string, cache bool) (invoke.Invoker, error) {
	if factoryName == "" {
		m, err := reg.StaticAppend(className, appendName)
		if err != nil {
			return nil, err
		}
		inv, err := invoke.NewCachedInvoker(reflect.Value{}, m)
		if err != nil {
			return nil, err
		}
		return inv, nil
	}

	factory, err := reg.StaticFactory(className, factoryName)
	if err != nil {
		return nil, err
	}

	if !cache {
		inv, err := invoke.NewReacquireInvoker(factory, appendName)
		if err != nil {
			return nil, err
		}
		return inv, nil
	}

	instance, err := factory.Produce()
	if err != nil {
		return nil, &invoke.ConfigurationError{Class: className, Method: factoryName, Err: err}
	}
	if invoke.IsNil(instance) {
		return nil, &invoke.ConfigurationError{Class: className, Method: factoryName, Err: fmt.Errorf("%w: appendInstance cannot return nil", invoke.ErrNilInstance)}
	}

	m, err := invoke.InstanceAppend(instance, appendName)
	if err != nil {
		return nil, &invoke.ConfigurationError{Class: className, Method: appendName, Err: err}
	}
	inv, err := invoke.NewCachedInvoker(instance, m)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Create is the plugin entry point. It decodes attrs, applies opts and
// builds the handler. Failures are reported to the status logger and
// signalled by a nil result; nothing is returned to the caller.
func Create(attrs map[string]any, opts ...Option) *Handler {
	cfg, err := Decode(attrs)
	if err != nil {
		status.Error("invoke handler: invalid attributes", err)
		return nil
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := New(cfg)
	if err != nil {
		status.Error("invoke handler: error creating handler", err,
			zap.String("handler", cfg.Name), zap.String("class", cfg.ClassName))
		return nil
	}
	return h
}

// Handle formats entry and delivers it. A delivery failure is reported and
// swallowed when failures are ignored, and returned as *AppendError otherwise.
func (h *Handler) Handle(entry *core.Entry) error {
	if !handler.Accepts(h.filter, entry) {
		h.stats.IncrementFiltered()
		return nil
	}

	text, err := formatter.FormatString(h.formatter, entry)
	if err == nil {
		err = h.invoker.Append(text)
	}
	if err == nil {
		h.stats.IncrementDelivered()
		return nil
	}

	h.stats.IncrementFailed()
	if h.ignoreExceptions {
		status.Error("invoke handler: error invoking append method", err, zap.String("handler", h.name))
		return nil
	}
	return &AppendError{Handler: h.name, Err: err}
}

// Name returns the configured handler name.
func (h *Handler) Name() string { return h.name }

// Stats returns the handler's delivery counters.
func (h *Handler) Stats() *handler.Stats { return h.stats }

// Invoker returns the strategy the handler was bound to.
func (h *Handler) Invoker() invoke.Invoker { return h.invoker }

// IgnoresExceptions reports whether delivery failures are swallowed.
func (h *Handler) IgnoresExceptions() bool { return h.ignoreExceptions }

// CanRecycleEntry reports true; entries are never retained.
func (h *Handler) CanRecycleEntry() bool { return true }

// Close is a no-op. The handler holds nothing beyond references to its target.
func (h *Handler) Close() error { return nil }

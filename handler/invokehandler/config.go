package invokehandler

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/philipp01105/nlog-invoke/core"
	"github.com/philipp01105/nlog-invoke/formatter"
	"github.com/philipp01105/nlog-invoke/handler"
	"github.com/philipp01105/nlog-invoke/invoke"
	"github.com/philipp01105/nlog-invoke/status"
)

// DefaultAppend is the append method name used when none is configured.
const DefaultAppend = "append"

// Config describes where a Handler sends its output.
type Config struct {
	// Name identifies the handler in status output and metrics. Required.
	Name string `mapstructure:"name"`

	// ClassName is the registry name of the class holding either the
	// instance factory or, without one, the append func. Required.
	ClassName string `mapstructure:"class"`

	// Append names the method that receives each formatted message.
	// Empty means DefaultAppend.
	Append string `mapstructure:"append"`

	// AppendInstance names a factory on the class that returns the value
	// Append is called on. Empty means Append is a class-level func.
	AppendInstance string `mapstructure:"appendInstance"`

	// NoCacheInstance calls the factory once per entry instead of once at
	// construction. It has no effect without AppendInstance. The attribute
	// is cacheInstance, with the opposite sense.
	NoCacheInstance bool `mapstructure:"-"`

	// PropagateExceptions returns delivery failures from Handle instead of
	// reporting them through the status logger. The attribute is
	// ignoreExceptions, with the opposite sense.
	PropagateExceptions bool `mapstructure:"-"`

	// Filter is consulted before formatting. Nil accepts everything.
	// As an attribute it may be given as a level name.
	Filter handler.Filter `mapstructure:"filter"`

	// Formatter renders entries. Nil means formatter.DefaultPattern.
	// As an attribute it may be given as a pattern string.
	Formatter formatter.Formatter `mapstructure:"layout"`

	// Registry resolves ClassName. Nil means invoke.Default().
	Registry *invoke.Registry `mapstructure:"-"`
}

// DefaultConfig returns a Config with every optional setting at its default.
// The zero Config differs only in leaving Append empty, which New treats as
// DefaultAppend.
func DefaultConfig() Config {
	return Config{Append: DefaultAppend}
}

// attributes is the decoding target for plugin attributes. The two flags
// are pointers so an absent key keeps the default.
type attributes struct {
	Config           `mapstructure:",squash"`
	CacheInstance    *bool `mapstructure:"cacheInstance"`
	IgnoreExceptions *bool `mapstructure:"ignoreExceptions"`
}

// Option adjusts a Config before the handler is built.
type Option func(*Config)

// WithRegistry resolves classes in r instead of the default registry.
func WithRegistry(r *invoke.Registry) Option {
	return func(c *Config) { c.Registry = r }
}

// WithFilter sets the handler's filter.
func WithFilter(f handler.Filter) Option {
	return func(c *Config) { c.Filter = f }
}

// WithFormatter sets the handler's layout.
func WithFormatter(f formatter.Formatter) Option {
	return func(c *Config) { c.Formatter = f }
}

var (
	formatterType = reflect.TypeOf((*formatter.Formatter)(nil)).Elem()
	filterType    = reflect.TypeOf((*handler.Filter)(nil)).Elem()
)

// Decode builds a Config from plugin attributes, starting from DefaultConfig.
// Keys match case-insensitively and string values are converted to the
// field's type, so {"cacheInstance": "false"} works. Unknown keys are
// reported to the status logger and otherwise ignored.
func Decode(attrs map[string]any) (Config, error) {
	a := attributes{Config: DefaultConfig()}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeElement,
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &a,
	})
	if err != nil {
		return a.Config, fmt.Errorf("invokehandler: build attribute decoder: %w", err)
	}
	if err := dec.Decode(attrs); err != nil {
		return a.Config, fmt.Errorf("invokehandler: decode attributes: %w", err)
	}

	cfg := a.Config
	if a.CacheInstance != nil {
		cfg.NoCacheInstance = !*a.CacheInstance
	}
	if a.IgnoreExceptions != nil {
		cfg.PropagateExceptions = !*a.IgnoreExceptions
	}

	if len(md.Unused) > 0 {
		status.Warn("invoke handler: ignoring unknown attributes",
			zap.String("handler", cfg.Name), zap.Strings("attributes", md.Unused))
	}
	return cfg, nil
}

// decodeElement turns string attributes into a layout or a filter.
func decodeElement(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()

	switch to {
	case formatterType:
		f, err := formatter.NewPatternFormatter(s)
		if err != nil {
			return nil, err
		}
		return f, nil
	case filterType:
		lvl, ok := core.ParseLevel(s)
		if !ok {
			return nil, fmt.Errorf("invokehandler: unknown filter level %q", s)
		}
		return handler.LevelFilter{Min: lvl}, nil
	}
	return data, nil
}

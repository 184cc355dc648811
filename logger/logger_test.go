package logger

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/nlog-invoke/formatter"
	"github.com/philipp01105/nlog-invoke/handler"
	"github.com/philipp01105/nlog-invoke/handler/invokehandler"
	"github.com/philipp01105/nlog-invoke/invoke"
	"github.com/philipp01105/nlog-invoke/status"
)

// capture collects everything its append func receives.
type capture struct {
	mu    sync.Mutex
	lines []string
}

func (c *capture) Append(text string) {
	c.mu.Lock()
	c.lines = append(c.lines, text)
	c.mu.Unlock()
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "")
}

func (c *capture) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

var errRejected = errors.New("rejected")

// newCaptureRegistry registers a "test.Capture" class whose append func
// records into the returned capture and whose reject func always fails.
func newCaptureRegistry(t testing.TB) (*invoke.Registry, *capture) {
	t.Helper()
	c := &capture{}
	reg := invoke.NewRegistry()
	if err := reg.Register(invoke.Class{
		Name: "test.Capture",
		Funcs: map[string]any{
			"append": c.Append,
			"reject": func(string) error { return errRejected },
		},
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return reg, c
}

// newCapture builds an invoke handler that appends to a fresh capture using
// the given layout.
func newCapture(t testing.TB, layout formatter.Formatter, ignoreExceptions bool) (*invokehandler.Handler, *capture) {
	t.Helper()
	reg, c := newCaptureRegistry(t)
	h, err := invokehandler.New(invokehandler.Config{
		Name:                "capture",
		ClassName:           "test.Capture",
		PropagateExceptions: !ignoreExceptions,
		Formatter:           layout,
		Registry:            reg,
	})
	if err != nil {
		t.Fatalf("invokehandler.New() error = %v", err)
	}
	return h, c
}

func textLayout() formatter.Formatter {
	return formatter.NewTextFormatter(formatter.Config{})
}

func TestLogger_LevelGate(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	logger := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		Build()

	// Debug should not be logged (below Info level)
	logger.Debug("debug message")
	if buf.String() != "" {
		t.Error("Debug message was logged when level is Info")
	}

	// Info should be logged
	logger.Info("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("Expected 'info message' in output, got: %s", buf.String())
	}

	buf.Reset()

	// Warn should be logged
	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("Expected 'warn message' in output, got: %s", buf.String())
	}

	buf.Reset()

	// Error should be logged
	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("Expected 'error message' in output, got: %s", buf.String())
	}

	if !logger.Enabled(WarnLevel) || logger.Enabled(DebugLevel) {
		t.Error("Enabled() disagrees with the configured level")
	}
}

func TestLogger_With(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	logger := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		WithFields(String("app", "test")).
		Build()

	// Create child logger with additional fields
	childLogger := logger.With(String("request_id", "123"))

	childLogger.Info("test message")

	output := buf.String()
	if !strings.Contains(output, "app=test") {
		t.Errorf("Expected 'app=test' in output, got: %s", output)
	}
	if !strings.Contains(output, "request_id=123") {
		t.Errorf("Expected 'request_id=123' in output, got: %s", output)
	}
}

func TestLogger_Fields(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	logger := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		Build()

	logger.Info("test",
		String("str", "value"),
		Int("int", 42),
		Bool("bool", true),
		Float64("float", 3.14),
		Duration("took", 1500*time.Millisecond),
		Err(errRejected),
	)

	output := buf.String()
	for _, want := range []string{"str=value", "int=42", "bool=true", "float=3.14", "took=1.5s", "error=rejected"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}
}

func TestLogger_FormattedLogging(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	logger := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		Build()

	logger.Infof("User %s logged in with ID %d", "alice", 123)

	output := buf.String()
	if !strings.Contains(output, "User alice logged in with ID 123") {
		t.Errorf("Expected formatted message in output, got: %s", output)
	}
}

func TestLogger_ImmutableWith(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	parent := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		WithFields(String("parent", "value")).
		Build()

	child := parent.With(String("child", "value"))

	// Parent should only have parent field
	parent.Info("parent message")
	parentOutput := buf.String()
	if !strings.Contains(parentOutput, "parent=value") {
		t.Error("Parent logger should have parent field")
	}
	if strings.Contains(parentOutput, "child=value") {
		t.Error("Parent logger should not have child field")
	}

	buf.Reset()

	// Child should have both fields
	child.Info("child message")
	childOutput := buf.String()
	if !strings.Contains(childOutput, "parent=value") {
		t.Error("Child logger should have parent field")
	}
	if !strings.Contains(childOutput, "child=value") {
		t.Error("Child logger should have child field")
	}
}

func TestLogger_Named(t *testing.T) {
	h, buf := newCapture(t, formatter.MustPatternFormatter("%logger|%msg%n"), true)

	parent := NewBuilder().
		WithName("app").
		WithHandler(h).
		Build()
	child := parent.Named("app.db")

	parent.Info("one")
	child.Info("two")

	if got, want := buf.String(), "app|one\napp.db|two\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if parent.Name() != "app" || child.Name() != "app.db" {
		t.Errorf("Name() = %q, %q", parent.Name(), child.Name())
	}
}

func TestLogger_Clock(t *testing.T) {
	ft := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	layout := formatter.MustPatternFormatter("%d{2006-01-02T15:04:05Z07:00} %msg")

	t.Run("WithClock", func(t *testing.T) {
		h, buf := newCapture(t, layout, true)
		log := NewBuilder().WithHandler(h).WithClock(xclock.NewFrozen(ft)).Build()

		log.Info("pinned")
		if got, want := buf.String(), "2025-01-01T12:00:00Z pinned"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("ProcessClock", func(t *testing.T) {
		old := xclock.Default()
		defer xclock.SetDefault(old)
		xclock.SetDefault(xclock.NewFrozen(ft))

		h, buf := newCapture(t, layout, true)
		log := NewBuilder().WithHandler(h).Build()

		log.Info("frozen", String("k", "v"))
		if got, want := buf.String(), "2025-01-01T12:00:00Z frozen"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})
}

func TestLogger_Caller(t *testing.T) {
	h, buf := newCapture(t, formatter.MustPatternFormatter("%caller %msg"), true)

	log := NewBuilder().WithHandler(h).WithCaller(true).Build()
	log.Info("where")

	if !strings.HasPrefix(buf.String(), "logger_test.go:") {
		t.Errorf("Expected caller to be this file, got: %s", buf.String())
	}
}

// The fast path goes through a FastHandler; the logger name and fields must
// still reach the delivered text.
func TestLogger_FastPath(t *testing.T) {
	h, buf := newCapture(t, formatter.MustPatternFormatter("%logger %level %msg%fields"), true)

	log := NewBuilder().
		WithName("svc").
		WithHandler(handler.NewMultiHandler(h)).
		WithFields(String("region", "eu")).
		Build()

	log.Warn("fast")
	if got, want := buf.String(), "svc WARN fast region=eu"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if h.Stats().Snapshot().Delivered != 1 {
		t.Errorf("Delivered = %d, want 1", h.Stats().Snapshot().Delivered)
	}
}

func TestLogger_ErrorHandler(t *testing.T) {
	reg, _ := newCaptureRegistry(t)
	reject, err := invokehandler.New(invokehandler.Config{
		Name:                "reject",
		ClassName:           "test.Capture",
		Append:              "reject",
		PropagateExceptions: true,
		Registry:            reg,
	})
	if err != nil {
		t.Fatalf("invokehandler.New() error = %v", err)
	}

	var got []error
	log := NewBuilder().
		WithHandler(reject).
		WithErrorHandler(func(err error) { got = append(got, err) }).
		Build()

	log.Info("no fields")
	log.Info("with fields", String("k", "v"))

	if len(got) != 2 {
		t.Fatalf("ErrorHandler called %d times, want 2", len(got))
	}
	var appendErr *invokehandler.AppendError
	if !errors.As(got[0], &appendErr) || appendErr.Handler != "reject" {
		t.Errorf("got %v, want *invokehandler.AppendError from 'reject'", got[0])
	}
	if !errors.Is(got[1], errRejected) {
		t.Errorf("got %v, want errRejected", got[1])
	}
}

func TestLogger_DefaultErrorHandlerReports(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	prev := status.SetLogger(zap.New(obsCore))
	defer status.SetLogger(prev)

	reg, _ := newCaptureRegistry(t)
	reject, err := invokehandler.New(invokehandler.Config{
		Name:                "reject",
		ClassName:           "test.Capture",
		Append:              "reject",
		PropagateExceptions: true,
		Registry:            reg,
	})
	if err != nil {
		t.Fatalf("invokehandler.New() error = %v", err)
	}

	NewBuilder().WithHandler(reject).Build().Error("boom")

	if logs.Len() != 1 {
		t.Fatalf("status entries = %d, want 1", logs.Len())
	}
	if !strings.Contains(logs.All()[0].ContextMap()["error"].(string), "rejected") {
		t.Errorf("unexpected status entry: %v", logs.All()[0].ContextMap())
	}
}

func TestLogger_NilHandler(t *testing.T) {
	log := NewBuilder().Build()
	log.Info("dropped", String("k", "v"))
	if log.Enabled(ErrorLevel) {
		t.Error("Enabled() should be false without a handler")
	}
	if err := log.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func BenchmarkLogger_LevelCheck(b *testing.B) {
	h, _ := newCapture(b, textLayout(), true)

	logger := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		Build()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Should exit early due to level check
		logger.Debug("debug message", String("key", "value"))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	h, _ := newCapture(b, textLayout(), true)

	logger := NewBuilder().
		WithHandler(h).
		WithLevel(InfoLevel).
		Build()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info("test message", String("key", "value"))
	}
}

func TestLogger_Fatal(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	log := NewBuilder().
		WithHandler(h).
		WithLevel(DebugLevel).
		Build()

	// Override osExit to capture exit code instead of actually exiting
	exitCode := -1
	origExit := osExit
	osExit = func(code int) { exitCode = code }
	defer func() { osExit = origExit }()

	log.Fatal("fatal error", String("key", "value"))

	if exitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "fatal error") {
		t.Errorf("Expected 'fatal error' in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "FATAL") {
		t.Errorf("Expected 'FATAL' in output, got: %s", buf.String())
	}
}

func TestLogger_Panic(t *testing.T) {
	h, buf := newCapture(t, textLayout(), true)

	log := NewBuilder().
		WithHandler(h).
		WithLevel(DebugLevel).
		Build()

	defer func() {
		r := recover()
		if r == nil {
			t.Error("Expected panic, got nil")
		}
		if r != "panic message" {
			t.Errorf("Expected panic with 'panic message', got: %v", r)
		}
		if !strings.Contains(buf.String(), "panic message") {
			t.Errorf("Expected 'panic message' in output, got: %s", buf.String())
		}
		if !strings.Contains(buf.String(), "PANIC") {
			t.Errorf("Expected 'PANIC' in output, got: %s", buf.String())
		}
	}()

	log.Panic("panic message")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"FATAL":   FatalLevel,
		"panic":   PanicLevel,
		"warning": WarnLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	h, buf := newCapture(t, formatter.MustPatternFormatter("%level %msg%fields;"), true)
	SetDefault(NewBuilder().WithHandler(h).Build())

	Info("hello", String("k", "v"))
	With(Int("n", 1)).Warn("scoped")
	Errorf("n=%d", 2)

	if got, want := buf.String(), "INFO hello k=v;WARN scoped n=1;ERROR n=2;"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

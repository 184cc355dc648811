package benchmark

import (
	"sync/atomic"

	"github.com/philipp01105/nlog-invoke/core"
	"github.com/philipp01105/nlog-invoke/formatter"
	"github.com/philipp01105/nlog-invoke/handler/invokehandler"
	"github.com/philipp01105/nlog-invoke/invoke"
	"github.com/philipp01105/nlog-invoke/logger"
)

// discardClass is registered once for every benchmark in the package.
const discardClass = "bench.Discard"

var sinkBytes atomic.Uint64

type discardSink struct{}

func (discardSink) Append(text string) { sinkBytes.Add(uint64(len(text))) }

var sharedSink = &discardSink{}

func discardAppend(text string) { sinkBytes.Add(uint64(len(text))) }

func init() {
	invoke.MustRegister(invoke.Class{
		Name: discardClass,
		Funcs: map[string]any{
			"append": discardAppend,
			"shared": func() *discardSink { return sharedSink },
			"fresh":  func() *discardSink { return &discardSink{} },
		},
	})
}

// strategy selects how the discard sink is bound.
type strategy struct {
	name           string
	appendInstance string
	cacheInstance  bool
}

var strategies = []strategy{
	{name: "CachedStatic"},
	{name: "CachedInstance", appendInstance: "shared", cacheInstance: true},
	{name: "Reacquire", appendInstance: "fresh"},
}

func newHandler(s strategy, layout formatter.Formatter) *invokehandler.Handler {
	h, err := invokehandler.New(invokehandler.Config{
		Name:            "bench-" + s.name,
		ClassName:       discardClass,
		AppendInstance:  s.appendInstance,
		NoCacheInstance: !s.cacheInstance,
		Formatter:       layout,
	})
	if err != nil {
		panic(err)
	}
	return h
}

// newNlogLogger returns a logger that formats JSON into the discard sink.
func newNlogLogger(level core.Level) *logger.Logger {
	return logger.NewBuilder().
		WithHandler(newHandler(strategies[0], formatter.NewJSONFormatter(formatter.Config{}))).
		WithLevel(level).
		Build()
}

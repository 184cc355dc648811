package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/philipp01105/nlog-invoke/core"
	"github.com/philipp01105/nlog-invoke/formatter"
	"github.com/philipp01105/nlog-invoke/handler"
	"github.com/philipp01105/nlog-invoke/handler/invokehandler"
	"github.com/philipp01105/nlog-invoke/logger"
	"github.com/philipp01105/nlog-invoke/plugin"
)

type options struct {
	name             string
	class            string
	appendName       string
	appendInstance   string
	cacheInstance    bool
	ignoreExceptions bool
	layout           string
	level            string
	metrics          bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "nloginvoke",
		Short: "nloginvoke logs stdin lines through an invoke handler",
		Long: `nloginvoke logs stdin lines through an invoke handler.
The target is chosen by name, exactly as in a logging configuration:
a class, an optional instance factory on it and an append method.
Built-in classes: ` + strings.Join(demoClasses, ", ") + `.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "cli", "handler name")
	f.StringVarP(&opts.class, "class", "c", stdoutClass, "class holding the append func or the instance factory")
	f.StringVarP(&opts.appendName, "append", "a", invokehandler.DefaultAppend, "append method name")
	f.StringVarP(&opts.appendInstance, "append-instance", "i", "", "instance factory name; empty calls append on the class")
	f.BoolVar(&opts.cacheInstance, "cache-instance", true, "call the instance factory once instead of once per line")
	f.BoolVar(&opts.ignoreExceptions, "ignore-exceptions", true, "report delivery failures to the status log instead of stderr")
	f.StringVarP(&opts.layout, "layout", "l", formatter.DefaultPattern, "pattern layout")
	f.StringVar(&opts.level, "level", "debug", "minimum level to deliver")
	f.BoolVar(&opts.metrics, "metrics", false, "print handler counters to stderr when input ends")
	return cmd
}

func run(in io.Reader, out, errOut io.Writer, opts options) error {
	minLevel, ok := core.ParseLevel(opts.level)
	if !ok {
		return fmt.Errorf("unknown level %q", opts.level)
	}

	m := plugin.NewManager()
	if err := m.RegisterFactory(plugin.InvokeElement, plugin.InvokeFactory(invokehandler.WithRegistry(newRegistry(out)))); err != nil {
		return err
	}

	h := m.Build(plugin.InvokeElement, map[string]any{
		"name":             opts.name,
		"class":            opts.class,
		"append":           opts.appendName,
		"appendInstance":   opts.appendInstance,
		"cacheInstance":    opts.cacheInstance,
		"ignoreExceptions": opts.ignoreExceptions,
		"layout":           opts.layout,
	})
	if h == nil {
		return errors.New("handler could not be configured, see status output")
	}
	defer h.Close()

	log := logger.NewBuilder().
		WithName("nloginvoke").
		WithHandler(h).
		WithLevel(minLevel).
		WithErrorHandler(func(err error) { fmt.Fprintf(errOut, "nloginvoke: %v\n", err) }).
		Build()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		level, msg := splitLevel(sc.Text())
		log.Log(level, msg)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if opts.metrics {
		if sp, ok := h.(handler.StatsProvider); ok {
			return writeMetrics(errOut, sp)
		}
	}
	return nil
}

// splitLevel takes a leading level name off line. Lines without one are INFO.
func splitLevel(line string) (core.Level, string) {
	word, rest, _ := strings.Cut(line, " ")
	if lvl, ok := core.ParseLevel(word); ok {
		return lvl, rest
	}
	return core.InfoLevel, line
}

func writeMetrics(w io.Writer, sp handler.StatsProvider) error {
	c := handler.NewStatsCollector("nloginvoke")
	if err := c.Add(sp); err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			fmt.Fprintf(w, "%s %g\n", mf.GetName(), metric.GetCounter().GetValue())
		}
	}
	return nil
}

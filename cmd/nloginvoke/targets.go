package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/philipp01105/nlog-invoke/invoke"
)

const (
	stdoutClass   = "console.Stdout"
	rotatingClass = "console.Rotating"
	failingClass  = "console.Failing"
)

var demoClasses = []string{stdoutClass, rotatingClass, failingClass}

var errRejected = errors.New("rejected by target")

// prefixWriter numbers its output with the order it was created in.
type prefixWriter struct {
	id int
	w  io.Writer
}

func (p *prefixWriter) Append(text string) error {
	_, err := fmt.Fprintf(p.w, "[%d] %s", p.id, text)
	return err
}

// upperWriter shouts.
type upperWriter struct{ w io.Writer }

func (u upperWriter) Write(text string) error {
	_, err := io.WriteString(u.w, strings.ToUpper(text))
	return err
}

func (u upperWriter) Append(text string) error { return u.Write(text) }

// newRegistry returns the demo classes, all writing to w:
//
//	console.Stdout    append writes as is; instance returns a new *prefixWriter
//	console.Rotating  next alternates between *prefixWriter and upperWriter
//	console.Failing   append always fails
func newRegistry(w io.Writer) *invoke.Registry {
	var created, turns int
	newPrefix := func() *prefixWriter {
		created++
		return &prefixWriter{id: created, w: w}
	}

	reg := invoke.NewRegistry()
	reg.MustRegister(invoke.Class{
		Name: stdoutClass,
		Funcs: map[string]any{
			"append": func(text string) error {
				_, err := io.WriteString(w, text)
				return err
			},
			"instance": newPrefix,
		},
	})
	reg.MustRegister(invoke.Class{
		Name: rotatingClass,
		Funcs: map[string]any{
			"next": func() any {
				turns++
				if turns%2 == 0 {
					return upperWriter{w: w}
				}
				return newPrefix()
			},
		},
	})
	reg.MustRegister(invoke.Class{
		Name: failingClass,
		Funcs: map[string]any{
			"append": func(string) error { return errRejected },
		},
	})
	return reg
}

package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/philipp01105/nlog-invoke/core"
)

// DefaultPattern is the layout used when a handler is not given a formatter.
const DefaultPattern = "%d{15:04:05.000} %-5level %logger - %msg%fields%n"

// PatternFormatter renders entries according to a conversion pattern.
//
// Supported conversions, each optionally preceded by a minimum width
// ("%5level" pads on the left, "%-5level" on the right):
//
//	%d, %date       entry time; %d{layout} takes a Go time layout
//	%p, %level      level name
//	%c, %logger     logger name
//	%m, %msg        message
//	%fields         " key=value" for every field
//	%caller         short file and line, empty when unknown
//	%n              newline
//	%%              a literal percent sign
type PatternFormatter struct {
	pattern  string
	segments []segment
}

type segmentKind uint8

const (
	segLiteral segmentKind = iota
	segDate
	segLevel
	segLogger
	segMessage
	segFields
	segCaller
)

type segment struct {
	kind  segmentKind
	text  string // literal text or date layout
	width int
	left  bool
}

var conversions = map[string]segmentKind{
	"d":       segDate,
	"date":    segDate,
	"p":       segLevel,
	"level":   segLevel,
	"c":       segLogger,
	"logger":  segLogger,
	"m":       segMessage,
	"msg":     segMessage,
	"message": segMessage,
	"fields":  segFields,
	"caller":  segCaller,
}

// NewPatternFormatter compiles pattern.
func NewPatternFormatter(pattern string) (*PatternFormatter, error) {
	segs, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &PatternFormatter{pattern: pattern, segments: segs}, nil
}

// MustPatternFormatter is like NewPatternFormatter but panics on a bad pattern.
func MustPatternFormatter(pattern string) *PatternFormatter {
	f, err := NewPatternFormatter(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// NewDefaultFormatter returns a PatternFormatter for DefaultPattern.
func NewDefaultFormatter() *PatternFormatter {
	return MustPatternFormatter(DefaultPattern)
}

// Pattern returns the source pattern.
func (f *PatternFormatter) Pattern() string { return f.pattern }

// Format formats an entry according to the pattern
func (f *PatternFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatBytes(entry, f.FormatEntry), nil
}

// FormatEntry writes the formatted entry into buf (implements BufferFormatter).
func (f *PatternFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	for i := range f.segments {
		s := &f.segments[i]
		start := buf.Len()
		s.write(entry, buf)
		if s.width > 0 {
			pad(buf, start, s.width, s.left)
		}
	}
}

func (s *segment) write(entry *core.Entry, buf *bytes.Buffer) {
	switch s.kind {
	case segLiteral:
		buf.WriteString(s.text)
	case segDate:
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), s.text))
	case segLevel:
		buf.WriteString(entry.Level.String())
	case segLogger:
		buf.WriteString(entry.Logger)
	case segMessage:
		buf.WriteString(entry.Message)
	case segFields:
		for _, field := range entry.Fields {
			buf.WriteByte(' ')
			buf.WriteString(field.Key)
			buf.WriteByte('=')
			buf.WriteString(field.StringValue())
		}
	case segCaller:
		if entry.Caller.Defined {
			buf.WriteString(entry.Caller.ShortFile)
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(entry.Caller.Line))
		}
	}
}

// pad widens the output written since start to width runes.
func pad(buf *bytes.Buffer, start, width int, left bool) {
	n := utf8.RuneCount(buf.Bytes()[start:])
	if n >= width {
		return
	}
	spaces := strings.Repeat(" ", width-n)
	if left {
		buf.WriteString(spaces)
		return
	}
	written := append([]byte(nil), buf.Bytes()[start:]...)
	buf.Truncate(start)
	buf.WriteString(spaces)
	buf.Write(written)
}

func parsePattern(p string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: segLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			lit.WriteByte(p[i])
			continue
		}
		i++
		if i >= len(p) {
			return nil, fmt.Errorf("formatter: pattern %q ends with a bare %%", p)
		}
		switch p[i] {
		case '%':
			lit.WriteByte('%')
			continue
		case 'n':
			// %n is only a newline when not the start of a longer name.
			if i+1 >= len(p) || !isNameByte(p[i+1]) {
				lit.WriteByte('\n')
				continue
			}
		}

		var s segment
		if p[i] == '-' {
			s.left = true
			i++
		}
		j := i
		for j < len(p) && p[j] >= '0' && p[j] <= '9' {
			j++
		}
		if j > i {
			s.width, _ = strconv.Atoi(p[i:j])
		}
		i = j

		for j < len(p) && isNameByte(p[j]) {
			j++
		}
		name := p[i:j]
		kind, ok := conversions[name]
		if !ok {
			return nil, fmt.Errorf("formatter: unknown conversion %%%s in pattern %q", name, p)
		}
		s.kind = kind
		i = j

		if i < len(p) && p[i] == '{' {
			end := strings.IndexByte(p[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("formatter: unterminated option in pattern %q", p)
			}
			s.text = p[i+1 : i+end]
			i += end + 1
		}
		if s.kind == segDate && s.text == "" {
			s.text = "2006-01-02 15:04:05.000"
		}

		flush()
		segs = append(segs, s)
		i-- // the loop increment moves past the conversion
	}
	flush()
	return segs, nil
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/nlog-invoke/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding the copy
// Format has to make out of its pooled buffer.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for the formatter's default)
	TimestampFormat string
}

// FormatString renders entry with f and returns the result as a string.
func FormatString(f Formatter, entry *core.Entry) (string, error) {
	if bf, ok := f.(BufferFormatter); ok {
		buf := getBuffer()
		bf.FormatEntry(entry, buf)
		s := buf.String()
		putBuffer(buf)
		return s, nil
	}
	b, err := f.Format(entry)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var bufferPool = &sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// formatBytes runs fill against a pooled buffer and returns a copy of the output.
func formatBytes(entry *core.Entry, fill func(*core.Entry, *bytes.Buffer)) []byte {
	buf := getBuffer()
	fill(entry, buf)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	putBuffer(buf)
	return result
}

// Package formatter turns log entries into text. Handlers call a Formatter
// once per event; the invoke handler passes the result on as a string.
//
// Three formatters are provided. TextFormatter writes a fixed
// "time [LEVEL] logger: message key=value" line. JSONFormatter writes one
// object per line. PatternFormatter follows a conversion pattern such as
// DefaultPattern and is what handlers fall back to when none is configured.
//
// All of them implement BufferFormatter and render into a pooled
// bytes.Buffer with Append-style calls (time.AppendFormat,
// strconv.AppendInt). Buffers larger than 64 KiB are not returned to the
// pool so one oversized line cannot pin memory.
package formatter

package lognerd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/thoreinstein/lognerd/internal/logging"
)

// TimestampFormat is ISO-8601 in UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Entry is a single log call, built fresh per call and consumed by the sinks.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Data    any
}

// Timestamp renders the entry time.
func (e Entry) Timestamp() string {
	return e.Time.UTC().Format(TimestampFormat)
}

// Formatter renders entries for the console and file sinks.
type Formatter struct {
	// Color wraps the console level tag in ANSI color codes.
	Color bool
}

// NewFormatter returns a Formatter with color enabled only when w supports it.
func NewFormatter(w io.Writer) Formatter {
	return Formatter{Color: logging.SupportsColor(w)}
}

var levelColors = map[Level]color.Attribute{
	LevelError: color.FgRed,
	LevelWarn:  color.FgYellow,
	LevelInfo:  color.FgCyan,
	LevelDebug: color.FgMagenta,
}

// Console renders "[LEVEL] <ts> - <message>", followed by the data as
// indented JSON on the next lines when present. No trailing newline.
func (f Formatter) Console(e Entry) string {
	var sb strings.Builder
	sb.WriteString(f.levelTag(e.Level))
	sb.WriteByte(' ')
	sb.WriteString(e.Timestamp())
	sb.WriteString(" - ")
	sb.WriteString(e.Message)

	if e.Data != nil {
		sb.WriteByte('\n')
		sb.WriteString(renderData(e.Data, "  "))
	}
	return sb.String()
}

// FileLine renders "<ts> [LEVEL] <message>", with " | Data: <json>" appended
// when data is present. No trailing newline.
func (f Formatter) FileLine(e Entry) string {
	var sb strings.Builder
	sb.WriteString(e.Timestamp())
	sb.WriteString(" [")
	sb.WriteString(e.Level.String())
	sb.WriteString("] ")
	sb.WriteString(e.Message)

	if e.Data != nil {
		sb.WriteString(" | Data: ")
		sb.WriteString(renderData(e.Data, ""))
	}
	return sb.String()
}

func (f Formatter) levelTag(l Level) string {
	tag := "[" + l.String() + "]"
	if !f.Color {
		return tag
	}
	attr, ok := levelColors[l]
	if !ok {
		return tag
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(tag)
}

// renderData encodes v as JSON. Values that cannot be encoded render as a
// JSON string of their %+v form.
func renderData(v any, indent string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}

	if err := enc.Encode(v); err != nil {
		buf.Reset()
		fallback, _ := json.Marshal(fmt.Sprintf("%+v", v))
		return string(fallback)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

// sink is shared by a logger and every child derived with With so lines from
// different children never interleave.
type sink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

type logfmtLogger struct {
	sink   *sink
	level  Level
	fields []Field
}

func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &logfmtLogger{
		sink:  &sink{out: out, now: time.Now},
		level: level,
	}
}

// NewFile appends to path, creating parent directories. The returned closer
// releases the file.
func NewFile(path string, level Level) (Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, fmt.Errorf("log path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(file, level), file, nil
}

func Nop() Logger {
	return &logfmtLogger{sink: &sink{out: io.Discard, now: time.Now}, level: Error + 1}
}

func (l *logfmtLogger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *logfmtLogger) With(fields ...Field) Logger {
	if l == nil {
		return Nop()
	}
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &logfmtLogger{sink: l.sink, level: l.level, fields: merged}
}

func (l *logfmtLogger) Debug(msg string, fields ...Field) { l.write(Debug, msg, fields) }
func (l *logfmtLogger) Info(msg string, fields ...Field)  { l.write(Info, msg, fields) }
func (l *logfmtLogger) Warn(msg string, fields ...Field)  { l.write(Warn, msg, fields) }
func (l *logfmtLogger) Error(msg string, fields ...Field) { l.write(Error, msg, fields) }

func (l *logfmtLogger) write(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	var buf bytes.Buffer
	appendPair(&buf, "ts", l.sink.now().UTC().Format(time.RFC3339Nano))
	appendPair(&buf, "level", level.String())
	appendPair(&buf, "msg", msg)
	for _, field := range l.fields {
		appendPair(&buf, field.Key, field.Value)
	}
	for _, field := range fields {
		appendPair(&buf, field.Key, field.Value)
	}
	buf.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = l.sink.out.Write(buf.Bytes())
}

func appendPair(buf *bytes.Buffer, key string, value any) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(encodeValue(value))
}

func encodeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Duration:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsAny(value, " \t\r\n\"=") {
		return strconv.Quote(value)
	}
	return value
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

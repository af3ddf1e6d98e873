package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
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

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Logger minimalista a stdout, text o json según LOG_FORMAT.
// Suficiente para un proceso de una sola sesión; si algún día hace
// falta algo más serio se cambia acá sin tocar a los callers.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	json  bool
	base  map[string]any
}

type Options struct {
	Level Level
	JSON  bool
	App   string
}

func New(opts Options) *Logger {
	base := map[string]any{}
	if strings.TrimSpace(opts.App) != "" {
		base["app"] = strings.TrimSpace(opts.App)
	}
	return &Logger{
		out:   os.Stdout,
		level: opts.Level,
		json:  opts.JSON,
		base:  base,
	}
}

// NewFromEnv crea el logger desde env:
//   - LOG_LEVEL=debug|info|warn|error (default info)
//   - LOG_FORMAT=text|json (default text)
func NewFromEnv() *Logger {
	return New(Options{
		Level: ParseLevel(os.Getenv("LOG_LEVEL")),
		JSON:  strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json"),
		App:   "medtimer",
	})
}

// With devuelve un logger hijo con campos fijos adicionales.
func (l *Logger) With(fields map[string]any) *Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{out: l.out, level: l.level, json: l.json, base: merged}
}

func (l *Logger) Debug(msg string, fields map[string]any) { l.emit(Debug, msg, fields) }
func (l *Logger) Info(msg string, fields map[string]any)  { l.emit(Info, msg, fields) }
func (l *Logger) Warn(msg string, fields map[string]any)  { l.emit(Warn, msg, fields) }
func (l *Logger) Error(msg string, fields map[string]any) { l.emit(Error, msg, fields) }

func (l *Logger) emit(lvl Level, msg string, fields map[string]any) {
	if l == nil || lvl < l.level {
		return
	}

	entry := map[string]any{
		"ts":    time.Now().Format(time.RFC3339),
		"level": lvl.String(),
		"msg":   msg,
	}
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}

	var line string
	if l.json {
		b, _ := json.Marshal(entry)
		line = string(b)
	} else {
		// keys ordenadas para salida estable (útil en tests/logs)
		keys := make([]string, 0, len(entry))
		for k := range entry {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, entry[k]))
		}
		line = strings.Join(parts, " ")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line+"\n")
}

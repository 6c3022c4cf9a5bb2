package log

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger is the leveled logging interface injected into every component.
// kv are alternating key/value pairs.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var stringLevels = map[string]Level{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// StdLogger writes leveled lines to stderr through the standard library
// logger. Stdout stays clean for the JSON-RPC and MCP traffic.
type StdLogger struct {
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errlog *log.Logger
}

// NewStdLogger parses the level string, falling back to info on unknown
// values, and returns a Logger writing to stderr.
func NewStdLogger(levelStr string) *StdLogger {
	return &StdLogger{
		level:  parseLevel(levelStr),
		debug:  log.New(os.Stderr, "[DEBUG] ", log.LstdFlags),
		info:   log.New(os.Stderr, "[INFO] ", log.LstdFlags),
		warn:   log.New(os.Stderr, "[WARN] ", log.LstdFlags),
		errlog: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

var _ Logger = (*StdLogger)(nil)

func parseLevel(s string) Level {
	if lvl, ok := stringLevels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return LevelInfo
}

func (l *StdLogger) shouldLog(level Level) bool {
	return level >= l.level
}

func formatMessage(msg string, kv ...any) string {
	if len(kv) == 0 {
		return msg
	}
	// Keys and values come in pairs; a trailing odd element is dropped.
	pairs := len(kv) / 2 * 2
	parts := make([]string, 0, pairs/2+1)
	parts = append(parts, msg)
	for i := 0; i < pairs; i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
	}
	return strings.Join(parts, " ")
}

func (l *StdLogger) Debug(msg string, kv ...any) {
	if l.shouldLog(LevelDebug) {
		l.debug.Println(formatMessage(msg, kv...))
	}
}

func (l *StdLogger) Info(msg string, kv ...any) {
	if l.shouldLog(LevelInfo) {
		l.info.Println(formatMessage(msg, kv...))
	}
}

func (l *StdLogger) Warn(msg string, kv ...any) {
	if l.shouldLog(LevelWarn) {
		l.warn.Println(formatMessage(msg, kv...))
	}
}

func (l *StdLogger) Error(msg string, kv ...any) {
	if l.shouldLog(LevelError) {
		l.errlog.Println(formatMessage(msg, kv...))
	}
}

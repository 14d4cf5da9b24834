package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// ParseLevel maps a config value to a Level. Unknown values fall back to INFO.
func ParseLevel(level string) Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

type Logger struct {
	level       Level
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New creates a logger writing every level to stderr, so CLI output on stdout
// stays clean.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(level string, w io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	return &Logger{
		level:       ParseLevel(level),
		debugLogger: log.New(w, "[DEBUG] ", flags),
		infoLogger:  log.New(w, "[INFO] ", flags),
		warnLogger:  log.New(w, "[WARN] ", flags),
		errorLogger: log.New(w, "[ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	l := NewWithWriter("ERROR", io.Discard)
	l.level = ERROR + 1
	return l
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	if l == nil || level < l.level {
		return
	}

	var out *log.Logger
	switch level {
	case DEBUG:
		out = l.debugLogger
	case INFO:
		out = l.infoLogger
	case WARN:
		out = l.warnLogger
	default:
		out = l.errorLogger
	}
	out.Output(3, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(DEBUG, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(INFO, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(WARN, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(ERROR, format, v...)
}

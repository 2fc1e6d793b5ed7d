package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Logger provides structured logging with different levels. Output goes to
// stderr unless a log file is configured: stdout carries the MCP transport
// and must stay clean.
type Logger struct {
	logger   *log.Logger
	logLevel LogLevel
	logFile  *os.File
}

// LogLevel represents the logging level
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

var defaultLogger *Logger

// InitLogger initializes the default logger from the configured level and
// optional log file path.
func InitLogger(level, logFile string) {
	var writer *os.File
	if logFile != "" {
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
			writer = os.Stderr
		} else {
			var err error
			writer, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
				writer = os.Stderr
			}
		}
	} else {
		writer = os.Stderr
	}

	defaultLogger = &Logger{
		logger:   log.New(writer, "", log.LstdFlags),
		logLevel: ParseLogLevel(level, INFO),
		logFile:  writer,
	}
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	if defaultLogger == nil {
		InitLogger("", "")
	}
	return defaultLogger
}

// ParseLogLevel parses a log level name, falling back to defaultValue.
func ParseLogLevel(value string, defaultValue LogLevel) LogLevel {
	switch value {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return defaultValue
	}
}

// log logs a message at the specified level
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.logLevel {
		return
	}

	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s", level.String(), msg)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
	os.Exit(1)
}

// Close closes the log file if opened
func (l *Logger) Close() {
	if l.logFile != os.Stderr && l.logFile != nil {
		l.logFile.Close()
	}
}

// CallMetrics tracks tool-call counters across the process lifetime. Tool
// calls may be dispatched concurrently, hence the atomic counters.
type CallMetrics struct {
	TotalCalls  int64
	TotalErrors int64
	StartTime   time.Time
}

var metrics = &CallMetrics{
	StartTime: time.Now(),
}

// RecordCall records a tool invocation
func RecordCall() {
	atomic.AddInt64(&metrics.TotalCalls, 1)
}

// RecordCallError records a tool invocation that produced an error result
func RecordCallError() {
	atomic.AddInt64(&metrics.TotalErrors, 1)
}

// GetMetrics returns a snapshot of the current metrics
func GetMetrics() CallMetrics {
	return CallMetrics{
		TotalCalls:  atomic.LoadInt64(&metrics.TotalCalls),
		TotalErrors: atomic.LoadInt64(&metrics.TotalErrors),
		StartTime:   metrics.StartTime,
	}
}

// LogMetrics logs current metrics
func LogMetrics() {
	logger := GetLogger()
	snapshot := GetMetrics()
	logger.Info("Tool metrics - Calls: %d, Errors: %d, Uptime: %s",
		snapshot.TotalCalls,
		snapshot.TotalErrors,
		time.Since(snapshot.StartTime).Round(time.Second),
	)
}

package logging

// Structured logging for formfill

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelVerbose
	LogLevelDebug
)

// String returns the config name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelSilent:
		return "silent"
	case LogLevelError:
		return "error"
	case LogLevelInfo:
		return "info"
	case LogLevelVerbose:
		return "verbose"
	case LogLevelDebug:
		return "debug"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a config/env string to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent", "quiet", "off":
		return LogLevelSilent, nil
	case "error":
		return LogLevelError, nil
	case "", "info":
		return LogLevelInfo, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q (silent|error|info|verbose|debug)", s)
	}
}

// Logger provides structured logging
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	file    *os.File
	fileLog *log.Logger
	stdout  *log.Logger
	stderr  *log.Logger
}

// NewLogger creates a new logger
func NewLogger(level LogLevel, logFile string) (*Logger, error) {
	l := &Logger{
		level:  level,
		stdout: log.New(os.Stdout, "", 0),
		stderr: log.New(os.Stderr, "", 0),
	}

	// Open log file if specified
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = file
		l.fileLog = log.New(file, "", log.LstdFlags)
	}

	return l, nil
}

// NewNopLogger returns a logger that drops everything.
func NewNopLogger() *Logger {
	return &Logger{
		level:  LogLevelSilent,
		stdout: log.New(io.Discard, "", 0),
		stderr: log.New(io.Discard, "", 0),
	}
}

// SetConsole redirects console output. The TUI uses this to keep log lines
// off the alternate screen; the log file, if any, is unaffected.
func (l *Logger) SetConsole(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stdout = log.New(stdout, "", 0)
	l.stderr = log.New(stderr, "", 0)
}

// Close closes the logger and flushes all data
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil
		return err
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelError {
		msg := fmt.Sprintf("ERROR: "+format, v...)
		l.write(msg, true)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelInfo {
		msg := fmt.Sprintf("INFO: "+format, v...)
		l.write(msg, false)
	}
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelVerbose {
		msg := fmt.Sprintf("VERBOSE: "+format, v...)
		l.write(msg, false)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.GetLevel() >= LogLevelDebug {
		msg := fmt.Sprintf("DEBUG: "+format, v...)
		l.write(msg, false)
	}
}

// write writes a message to the appropriate outputs
func (l *Logger) write(msg string, isError bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		l.fileLog.Println(msg)
	}

	// Errors go to stderr; everything else reaches stdout only at verbose/debug
	if isError {
		l.stderr.Println(msg)
	} else if l.level >= LogLevelVerbose {
		l.stdout.Println(msg)
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogStartup logs which service the tool talks to.
func (l *Logger) LogStartup(endpoint, variant, configPath string) {
	l.Info("Starting formfill")
	l.Verbose("  Endpoint: %s", endpoint)
	l.Verbose("  Payload variant: %s", variant)
	if configPath != "" {
		l.Verbose("  Config: %s", configPath)
	}
}

// LogSubmission logs the parameters of a submission as it is sent.
func (l *Logger) LogSubmission(formURL string, responses int, interval time.Duration, tone string) {
	l.Info("Submitting %d response(s) for %s", responses, formURL)
	l.Verbose("  Interval: %s", interval)
	l.Verbose("  Tone: %s", tone)
}

// LogOutcome logs how a submission ended.
func (l *Logger) LogOutcome(phase string, completed, total int, message string, elapsed time.Duration) {
	msg := fmt.Sprintf("Submission %s after %s (%d/%d simulated): %s",
		strings.ToUpper(phase), elapsed.Round(time.Millisecond), completed, total, message)
	if phase == "failed" {
		l.Error("%s", msg)
		return
	}
	l.Info("%s", msg)
}

// LogBody logs a request or response body (for debug level)
func (l *Logger) LogBody(label string, data []byte) {
	if l.GetLevel() >= LogLevelDebug {
		l.Debug("%s: %s", label, strings.TrimSpace(string(data)))
	}
}

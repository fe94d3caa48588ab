package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
	Warning(msg string)
	Close()
}

type fileLogger struct {
	mu      sync.Mutex
	logFile *os.File
	log     zerolog.Logger
	closed  bool
}

// NewFileLogger writes JSON lines to {logDir}/{logPrefix}_{timestamp}.json.
func NewFileLogger(logDir, logPrefix string) (Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory '%s': %w", logDir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := fmt.Sprintf("%s_%s.json", logPrefix, timestamp)

	logFilePath := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", logFilePath, err)
	}

	return &fileLogger{
		logFile: file,
		log:     zerolog.New(file).With().Timestamp().Logger(),
	}, nil
}

// NewWriterLogger writes JSON lines to w. Close does not close w.
func NewWriterLogger(w io.Writer) Logger {
	return &fileLogger{
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

func (l *fileLogger) writeLogInternal(level zerolog.Level, msg string, errIn error, skip int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		fmt.Fprintf(os.Stderr, "logger is closed, dropping log: %s\n", msg)
		return
	}

	shortFileName, funcName := "???", "???"
	if pc, filePath, _, ok := runtime.Caller(skip); ok {
		shortFileName = filepath.Base(filePath)
		if fn := runtime.FuncForPC(pc); fn != nil {
			parts := strings.Split(fn.Name(), ".")
			funcName = parts[len(parts)-1]
		}
	}

	event := l.log.WithLevel(level).
		Str("file", shortFileName).
		Str("function", funcName)

	if errIn != nil {
		event = event.Err(errIn)
	}

	event.Msg(msg)
}

func (l *fileLogger) Info(msg string) {
	l.writeLogInternal(zerolog.InfoLevel, msg, nil, 2)
}

func (l *fileLogger) Error(msg string, err error) {
	l.writeLogInternal(zerolog.ErrorLevel, msg, err, 2)
}

func (l *fileLogger) Warning(msg string) {
	l.writeLogInternal(zerolog.WarnLevel, msg, nil, 2)
}

func (l *fileLogger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.logFile != nil {
		if err := l.logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
		}
		l.logFile = nil
	}
}

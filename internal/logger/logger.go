// Package logger writes streaklit's structured log to a rotating file under the
// config directory. Until Init runs every call is a no-op, which keeps tests quiet.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	dirName  = "logs"
	fileName = "streaklit.log"
)

var (
	mu   sync.RWMutex
	std  *log.Logger
	file *lumberjack.Logger
)

type Config struct {
	// Dir is the config directory; the log goes to Dir/logs/streaklit.log
	Dir string
	// Debug lowers the level to debug and mirrors output to Stderr
	Debug  bool
	Stderr io.Writer
}

// Init opens the log file and installs the package logger
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.Dir, dirName)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, fileName),
		MaxSize:    2, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	var out io.Writer = rotating
	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		out = io.MultiWriter(rotating, stderr)
	}

	l := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "streaklit",
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
		CallerOffset:    1,
	})

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	std, file = l, rotating
	return nil
}

// Path returns the active log file, or "" before Init
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close flushes and closes the log file
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	std, file = nil, nil
	return err
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

func Debug(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}

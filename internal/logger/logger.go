// Package logger owns the process-wide charm logger. Output goes to a rotated
// file under the config directory and, for debug runs and the server, stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/daybook/internal/constants"
)

// Logger is nil until Init succeeds; the package helpers are no-ops before then.
var Logger *log.Logger

const (
	logFileName = constants.AppName + ".log"

	rotateSizeMB  = 10
	rotateBackups = 3
	rotateAgeDays = 28
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Console mirrors info-level output to stderr without turning on debug.
	Console bool
}

func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    rotateSizeMB,
		MaxBackups: rotateBackups,
		MaxAge:     rotateAgeDays,
		Compress:   true,
	}

	Logger = log.NewWithOptions(cfg.writer(file), log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           cfg.level(),
		Prefix:          constants.AppName,
	})
	return nil
}

func (c Config) level() log.Level {
	switch {
	case c.Debug:
		return log.DebugLevel
	case c.Console:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

func (c Config) writer(file io.Writer) io.Writer {
	if c.Debug || c.Console {
		return io.MultiWriter(os.Stderr, file)
	}
	return file
}

// Component returns a child logger tagged with name.
func Component(name string) *log.Logger {
	if Logger == nil {
		return log.New(io.Discard)
	}
	return Logger.With("component", name)
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

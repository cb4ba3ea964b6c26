package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

var std = newLogger(Config{Level: "info"})

func newLogger(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level, err := charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = charmlog.InfoLevel
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return l
}

// Init replaces the process logger.
func Init(cfg Config) {
	std = newLogger(cfg)
}

func L() *charmlog.Logger { return std }

func With(keyvals ...any) *charmlog.Logger {
	return std.With(keyvals...)
}

func Debug(msg string, keyvals ...any) { std.Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { std.Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { std.Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { std.Error(msg, keyvals...) }

package logger

import (
	"io"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Output targets besides a file path.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// outputWriter resolves cfg.Output. Any value other than stdout or stderr is
// a file path, written through a size-rotated lumberjack logger.
func outputWriter(cfg *Config) io.Writer {
	switch strings.ToLower(cfg.Output) {
	case "", OutputStdout:
		return os.Stdout
	case OutputStderr:
		return os.Stderr
	default:
		return &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}
	}
}

// isFile reports whether cfg writes to a file, where color codes are noise.
func isFile(cfg *Config) bool {
	switch strings.ToLower(cfg.Output) {
	case "", OutputStdout, OutputStderr:
		return false
	}
	return true
}

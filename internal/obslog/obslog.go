// Package obslog builds the process-wide zap.Logger. Reflow is a filter: its
// stdout is reserved for rendered markdown, so every log line goes to
// stderr, with a development console encoder in the style of the teacher
// pack's fb2cng config.LoggingConfig.Prepare, trimmed down to the single
// destination this tool needs.
package obslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names accepted by --log-level / REFLOW_LOG_LEVEL.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelNone  = "none"
)

// New builds a zap.Logger writing a caller-free console encoding to stderr
// at the given level, with colorized level names when stderr is a terminal. LevelNone returns a no-op logger.
func New(level string) (*zap.Logger, error) {
	if level == LevelNone {
		return zap.NewNop(), nil
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if enableColor(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(ec)

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapLevel)
	return zap.New(core).Named("reflow"), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, err
	}
	return l, nil
}

// enableColor reports whether f looks like an interactive terminal. Reflow
// never runs against a pty in its own test suite, but a real terminal run
// gets colorized level names the same way fb2cng's console logger does.
func enableColor(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

package log

import (
	"go.uber.org/zap"
)

var defaultLogger = zap.NewNop()

func Get() *zap.Logger {
	return defaultLogger
}

// Set enables development logging. An empty path writes to stderr, which is
// only useful outside the TUI; the editor passes a file instead.
func Set(path string, verbose bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	output := "stderr"
	if path != "" {
		output = path
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	defaultLogger = l
	return nil
}

func Flush() {
	_ = defaultLogger.Sync()
}

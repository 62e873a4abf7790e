package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a production logger, used before configuration is loaded
func NewLogger() *zap.Logger {
	logger, err := New("info", false)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewProductionLogger creates a JSON logger at info level
func NewProductionLogger() (*zap.Logger, error) {
	return New("info", false)
}

// NewDevelopmentLogger creates a console logger at info level
func NewDevelopmentLogger() (*zap.Logger, error) {
	return New("info", true)
}

// New creates a logger at the named level. Development loggers write
// console-encoded lines, production loggers write JSON. Both log to stderr so
// that reports written to stdout stay machine readable.
func New(level string, development bool) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(parsed)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

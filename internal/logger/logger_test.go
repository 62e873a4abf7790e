package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("should create a new zap logger instance", func(t *testing.T) {
		// Act
		logger := NewLogger()

		// Assert
		assert.NotNil(t, logger)
		assert.IsType(t, &zap.Logger{}, logger)
	})
}

func TestNewProductionLogger(t *testing.T) {
	t.Run("should create an info level logger", func(t *testing.T) {
		// Act
		logger, err := NewProductionLogger()

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNewDevelopmentLogger(t *testing.T) {
	t.Run("should create an info level development logger", func(t *testing.T) {
		// Act
		logger, err := NewDevelopmentLogger()

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNew(t *testing.T) {
	t.Run("should honour the requested level", func(t *testing.T) {
		// Act
		logger, err := New("warn", false)

		// Assert
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("should build a development logger", func(t *testing.T) {
		// Act
		logger, err := New("debug", true)

		// Assert
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should reject an unknown level", func(t *testing.T) {
		// Act
		logger, err := New("chatty", false)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, logger)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

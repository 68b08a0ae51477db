package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_WritesAllLevels(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := New(logPath, LevelDebug)
	require.NoError(t, err)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logContent := string(content)
	require.Contains(t, logContent, "DEBUG: debug message")
	require.Contains(t, logContent, "INFO: info message")
	require.Contains(t, logContent, "WARN: warning message")
	require.Contains(t, logContent, "ERROR: error message")
}

func TestLogger_FiltersBelowMinLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := New(logPath, LevelWarn)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	require.NotContains(t, string(content), "hidden")
	require.Contains(t, string(content), "visible")
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	var logger *Logger

	logger.Info("no-op")
	require.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelInfo, ParseLevel("INFO"))
	require.Equal(t, LevelError, ParseLevel("Error"))
	require.Equal(t, LevelWarn, ParseLevel("bogus"))
}

func TestLogger_RestrictivePermissions(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "test.log")

	logger, err := New(logPath, LevelInfo)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

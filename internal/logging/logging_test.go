package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/towbill/internal/logging"
)

func restoreDefault(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestSetup(t *testing.T) {
	t.Run("should log to the console at the given level", func(t *testing.T) {
		restoreDefault(t)
		var buf bytes.Buffer
		closeFn := logging.Setup(logging.Options{Level: "warn", Console: &buf})
		defer closeFn()

		slog.Info("hidden")
		slog.Warn("shown", "ticket", 7)
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.Contains(t, buf.String(), "ticket=7")
	})
	t.Run("should log to a file", func(t *testing.T) {
		restoreDefault(t)
		path := filepath.Join(t.TempDir(), "towbill.log")
		closeFn := logging.Setup(logging.Options{Level: "debug", File: path})

		slog.Debug("to file", "run", "abc")
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "msg=\"to file\"")
		assert.Contains(t, string(data), "run=abc")
	})
}

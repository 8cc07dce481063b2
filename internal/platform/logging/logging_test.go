package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWritesConsoleAndFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")
	var console bytes.Buffer

	logger, closeFn, err := Setup(Options{
		Level:    "info",
		FilePath: logPath,
		Console:  &console,
		NoColor:  true,
	})
	require.NoError(t, err)

	logger.Info().Str("event", "test.entry").Msg("hello from test")
	closeFn()

	require.Contains(t, console.String(), "hello from test")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"event":"test.entry"`)
	require.Contains(t, string(data), `"service":"vodframes"`)
}

func TestSetupLevelFiltersDebug(t *testing.T) {
	var console bytes.Buffer

	logger, closeFn, err := Setup(Options{Level: "info", Console: &console, NoColor: true})
	require.NoError(t, err)
	defer closeFn()

	logger.Debug().Msg("should be suppressed")
	logger.Info().Msg("should appear")

	out := console.String()
	require.NotContains(t, out, "should be suppressed")
	require.Contains(t, out, "should appear")
}

func TestSetupAppendsAcrossRuns(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	for i := 0; i < 2; i++ {
		logger, closeFn, err := Setup(Options{FilePath: logPath, Console: &bytes.Buffer{}, NoColor: true})
		require.NoError(t, err)
		logger.Info().Int("run", i).Msg("cycle")
		closeFn()
	}

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"run":0`)
	require.Contains(t, string(data), `"run":1`)
}

func TestSetupRejectsUnwritableFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Setup(Options{FilePath: dir, Console: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestWithComponent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	base, closeFn, err := Setup(Options{FilePath: logPath, Console: &bytes.Buffer{}, NoColor: true})
	require.NoError(t, err)

	WithComponent(base, "catalog").Info().Msg("tagged")
	closeFn()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"component":"catalog"`)
}

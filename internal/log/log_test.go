package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapLogger installs a test logger writing to a temp file and restores
// the previous one when the test ends.
func swapLogger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := newLogger(path)
	require.NoError(t, err)

	prev := defaultLogger
	defaultLogger = logger
	t.Cleanup(func() {
		_ = logger.file.Close()
		defaultLogger = prev
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWrite_FormatsKeyValueFields(t *testing.T) {
	path := swapLogger(t)

	Info(CatSession, "clean applied", "ticket", 3, "elapsed", "120ms")

	out := readLog(t, path)
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "[session]")
	assert.Contains(t, out, "clean applied")
	assert.Contains(t, out, "ticket=3")
	assert.Contains(t, out, "elapsed=120ms")
}

func TestWrite_OddFieldCountMarksMissing(t *testing.T) {
	path := swapLogger(t)

	Debug(CatHistory, "commit", "dangling")

	assert.Contains(t, readLog(t, path), "dangling=<missing>")
}

func TestErrorErr_IncludesError(t *testing.T) {
	path := swapLogger(t)

	ErrorErr(CatDB, "archive save failed", os.ErrPermission)

	out := readLog(t, path)
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "error=permission denied")
}

func TestSetMinLevel_FiltersBelow(t *testing.T) {
	path := swapLogger(t)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "ignored")
	Info(CatUI, "also ignored")
	Warn(CatUI, "kept")

	out := readLog(t, path)
	assert.NotContains(t, out, "ignored")
	assert.Contains(t, out, "kept")
}

func TestSetEnabled_SilencesOutput(t *testing.T) {
	path := swapLogger(t)

	SetEnabled(false)
	Error(CatCleaner, "dropped")
	SetEnabled(true)
	Error(CatCleaner, "written")

	out := readLog(t, path)
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "written")
}

func TestWrite_PublishesEntries(t *testing.T) {
	swapLogger(t)

	ch := defaultLogger.broker.Subscribe(t.Context())
	Info(CatConfig, "config reloaded")

	select {
	case event := <-ch:
		assert.Equal(t, EntryEvent, event.Type)
		assert.Contains(t, event.Payload, "config reloaded")
	default:
		t.Fatal("expected a published log entry")
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

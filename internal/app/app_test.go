package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/session"
)

func newTestApp(t *testing.T, configPath string) Model {
	t.Helper()
	sess := session.New(session.Config{
		Cleaner: cleaner.Func(func(_ context.Context, text string, _ cleaner.Options) (string, error) {
			return text, nil
		}),
		Options: cleaner.DefaultOptions(),
	})
	m := New(Deps{
		Config:     config.Defaults(),
		ConfigPath: configPath,
		Session:    sess,
	})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNew_WithoutConfigPathSkipsWatcher(t *testing.T) {
	m := newTestApp(t, "")
	assert.Nil(t, m.watcherHandle)
	assert.Nil(t, m.waitForConfigChange())
}

func TestNew_WithConfigPathStartsWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newTestApp(t, path)
	assert.NotNil(t, m.watcherHandle)
	assert.NotNil(t, m.waitForConfigChange())
}

func TestReloadConfig_AppliesOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newTestApp(t, path)
	require.True(t, m.session.Options().SmartQuotes)

	// Flip an option on disk and reload.
	opts := m.session.Options()
	opts.SmartQuotes = false
	opts.FixGrammar = true
	require.NoError(t, config.SaveOptions(path, opts))

	m = m.reloadConfig()
	assert.False(t, m.session.Options().SmartQuotes)
	assert.True(t, m.session.Options().FixGrammar)
}

func TestReloadConfig_KeepsOptionsOnUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newTestApp(t, path)
	before := m.session.Options()

	require.NoError(t, os.WriteFile(path, []byte(": not yaml ["), 0600))
	m = m.reloadConfig()
	assert.Equal(t, before, m.session.Options())
}

func TestUpdate_ConfigChangedContinuesWaiting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	m := newTestApp(t, path)
	next, cmd := m.Update(configChangedMsg{})
	assert.IsType(t, Model{}, next)
	assert.NotNil(t, cmd, "must keep listening for further config changes")
}

func TestUpdate_ForwardsToScreen(t *testing.T) {
	m := newTestApp(t, "")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := next.(Model)
	require.True(t, ok)
	assert.Contains(t, model.View(), "Input")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polish/internal/cleaner"
)

func TestSaveOptions_UpdatesExistingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	opts := cleaner.Options{FixGrammar: true, StripMarkdown: true}
	require.NoError(t, SaveOptions(path, opts))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.True(t, cfg.Options.FixGrammar)
	assert.True(t, cfg.Options.StripMarkdown)
	assert.False(t, cfg.Options.SmartQuotes)
}

func TestSaveOptions_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveOptions(path, cleaner.DefaultOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Polish Configuration")
	assert.Contains(t, string(data), "debounce_ms")
}

func TestSaveOptions_CreatesFileWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveOptions(path, cleaner.Options{Whitespace: true}))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.True(t, cfg.Options.Whitespace)
	assert.False(t, cfg.Options.Dashes)
}

func TestSaveOptions_AppendsSectionWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debounce_ms: 250\n"), 0o600))

	require.NoError(t, SaveOptions(path, cleaner.Options{Dashes: true}))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, 250, cfg.DebounceMs, "existing keys preserved")
	assert.True(t, cfg.Options.Dashes)
}

package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/tracing"
)

func TestBuildCleaner_RequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	provider, err := tracing.NewProvider(tracing.Config{Enabled: false})
	require.NoError(t, err)

	_, err = buildCleaner(config.Defaults(), provider)
	require.ErrorIs(t, err, cleaner.ErrMissingAPIKey)
}

func TestBuildCleaner_WithAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	provider, err := tracing.NewProvider(tracing.Config{Enabled: false})
	require.NoError(t, err)

	c, err := buildCleaner(config.Defaults(), provider)
	require.NoError(t, err)
	require.NotNil(t, c)
	// Disabled tracing leaves the caching layer on the outside.
	require.IsType(t, &cleaner.Caching{}, c)
}

func TestBuildCleaner_TracingWrapsChain(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:     true,
		Exporter:    "none",
		SampleRate:  1.0,
		ServiceName: "polish-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	})

	c, err := buildCleaner(config.Defaults(), provider)
	require.NoError(t, err)
	require.IsType(t, &cleaner.Traced{}, c)
}

func TestTracingConfig_DefaultsFilePath(t *testing.T) {
	cfg := config.Defaults()
	cfg.Tracing.FilePath = ""

	tc := tracingConfig(cfg)
	require.Equal(t, config.DefaultTracesFilePath(), tc.FilePath,
		"missing file_path should fall back to the derived default")
}

func TestTracingConfig_KeepsExplicitFilePath(t *testing.T) {
	cfg := config.Defaults()
	cfg.Tracing.FilePath = "/tmp/traces.jsonl"

	tc := tracingConfig(cfg)
	require.Equal(t, "/tmp/traces.jsonl", tc.FilePath)
}

func TestDefaultConfigPath(t *testing.T) {
	path := defaultConfigPath()
	require.Contains(t, path, "polish")
	require.Contains(t, path, "config.yaml")
}

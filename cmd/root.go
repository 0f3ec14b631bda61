package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/polish/internal/app"
	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/history"
	"github.com/zjrosen/polish/internal/infrastructure/sqlite"
	"github.com/zjrosen/polish/internal/log"
	"github.com/zjrosen/polish/internal/pubsub"
	"github.com/zjrosen/polish/internal/session"
	"github.com/zjrosen/polish/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "polish",
	Short:   "A terminal ui for cleaning up pasted text",
	Long:    `A terminal user interface that cleans up pasted text through the Anthropic API, with per-pane undo/redo history and debounced checkpoints.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/polish/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write debug logs to .polish/debug.log")
	rootCmd.Flags().Bool("no-archive", false,
		"disable the sqlite archive of completed cleanings")
	rootCmd.Flags().Int("debounce-ms", 0,
		"override the undo checkpoint debounce interval in milliseconds")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("debounce_ms", defaults.DebounceMs)
	viper.SetDefault("cleaner.model", defaults.Cleaner.Model)
	viper.SetDefault("cleaner.max_tokens", defaults.Cleaner.MaxTokens)
	viper.SetDefault("cleaner.cache_ttl_minutes", defaults.Cleaner.CacheTTLMinutes)
	viper.SetDefault("options.smart_quotes", defaults.Options.SmartQuotes)
	viper.SetDefault("options.dashes", defaults.Options.Dashes)
	viper.SetDefault("options.whitespace", defaults.Options.Whitespace)
	viper.SetDefault("options.strip_markdown", defaults.Options.StripMarkdown)
	viper.SetDefault("options.fix_grammar", defaults.Options.FixGrammar)
	viper.SetDefault("archive.enabled", defaults.Archive.Enabled)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.wrap_width", defaults.UI.WrapWidth)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .polish/config.yaml (current directory)
		// 2. ~/.config/polish/config.yaml (user config)
		if _, err := os.Stat(".polish/config.yaml"); err == nil {
			viper.SetConfigFile(".polish/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "polish"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a default one.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// defaultConfigPath is where a fresh config file is written when none exists.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".polish/config.yaml"
	}
	return filepath.Join(home, ".config", "polish", "config.yaml")
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if debugMode || os.Getenv("POLISH_DEBUG") != "" {
		if err := os.MkdirAll(".polish", 0o750); err == nil {
			if cleanup, err := log.InitWithTeaLog(".polish/debug.log", "polish"); err == nil {
				defer cleanup()
			}
		}
	}

	if flagV, _ := cmd.Flags().GetInt("debounce-ms"); cmd.Flags().Changed("debounce-ms") {
		cfg.DebounceMs = flagV
	}
	if noArchive, _ := cmd.Flags().GetBool("no-archive"); noArchive {
		cfg.Archive.Enabled = false
	}

	provider, err := tracing.NewProvider(tracingConfig(cfg))
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	cleanerChain, err := buildCleaner(cfg, provider)
	if err != nil {
		return err
	}

	var archive session.Archiver
	var db *sqlite.DB
	if cfg.Archive.Enabled {
		path := cfg.Archive.Path
		if path == "" {
			path = config.DefaultArchivePath()
		}
		db, err = sqlite.NewDB(path)
		if err != nil {
			// The archive is a convenience; the editor works without it.
			log.ErrorErr(log.CatDB, "archive unavailable", err, "path", path)
		} else {
			defer func() { _ = db.Close() }()
			archive = db.CleaningRepository()
		}
	}

	changes := pubsub.NewBroker[history.Change[string]]()
	defer changes.Close()

	sess := session.New(session.Config{
		Debounce: time.Duration(cfg.DebounceMs) * time.Millisecond,
		Cleaner:  cleanerChain,
		Options:  cfg.Options,
		Archive:  archive,
		Changes:  changes,
	})

	model := app.New(app.Deps{
		Config:     cfg,
		ConfigPath: viper.ConfigFileUsed(),
		Session:    sess,
		Changes:    changes,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// buildCleaner assembles the Anthropic cleaner with caching and tracing.
// tracingConfig fills in the derived traces path when the config omits it,
// so the file exporter works out of the box.
func tracingConfig(cfg config.Config) tracing.Config {
	tc := cfg.Tracing
	if tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	return tc
}

func buildCleaner(cfg config.Config, provider *tracing.Provider) (cleaner.Cleaner, error) {
	base, err := cleaner.NewAnthropic(cleaner.AnthropicConfig{
		Model:     cfg.Cleaner.Model,
		MaxTokens: int64(cfg.Cleaner.MaxTokens),
		BaseURL:   cfg.Cleaner.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	ttl := cleaner.DefaultCacheTTL
	if cfg.Cleaner.CacheTTLMinutes > 0 {
		ttl = time.Duration(cfg.Cleaner.CacheTTLMinutes) * time.Minute
	}
	var chain cleaner.Cleaner = cleaner.NewCaching(base, ttl)

	if provider.Enabled() {
		chain = cleaner.NewTraced(chain, provider.Tracer())
	}
	return chain, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

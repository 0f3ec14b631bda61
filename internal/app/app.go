// Package app contains the root application model: the cleaning screen
// plus config live-reload.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/history"
	"github.com/zjrosen/polish/internal/log"
	"github.com/zjrosen/polish/internal/pubsub"
	"github.com/zjrosen/polish/internal/session"
	"github.com/zjrosen/polish/internal/ui"
	"github.com/zjrosen/polish/internal/watcher"
)

// configChangedMsg signals that the config file was modified on disk.
type configChangedMsg struct{}

// Deps carries everything the root model composes. The cleaner chain and
// archive are already wired into Session by the cmd layer.
type Deps struct {
	Config     config.Config
	ConfigPath string
	Session    *session.Session
	Changes    *pubsub.Broker[history.Change[string]]
}

// Model is the root application state.
type Model struct {
	screen  ui.Model
	session *session.Session

	configPath string

	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}
}

// New creates the root model. Config watching starts only when a config
// path is known; the app works fine without live reload.
func New(deps Deps) Model {
	screen := ui.New(deps.Session, deps.Config.UI, deps.Changes)
	if deps.ConfigPath != "" {
		screen = screen.WithOptionsSaver(func(opts cleaner.Options) error {
			return config.SaveOptions(deps.ConfigPath, opts)
		})
	}

	m := Model{
		screen:     screen,
		session:    deps.Session,
		configPath: deps.ConfigPath,
	}

	if deps.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(deps.ConfigPath))
		if err == nil {
			if ch, err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCh = ch
			} else {
				_ = w.Stop()
			}
		}
		// Watcher init errors are non-fatal; changes then require a restart.
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.screen.Init()}
	if cmd := m.waitForConfigChange(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// waitForConfigChange blocks on the watcher channel inside a command.
func (m Model) waitForConfigChange() tea.Cmd {
	if m.watcherCh == nil {
		return nil
	}
	ch := m.watcherCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(configChangedMsg); ok {
		m = m.reloadConfig()
		return m, m.waitForConfigChange()
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return m.screen.View()
}

// reloadConfig re-reads the config file and applies the settings that can
// change live. Debounce and archive changes require a restart.
func (m Model) reloadConfig() Model {
	v := viper.New()
	v.SetConfigFile(m.configPath)
	if err := v.ReadInConfig(); err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err, "path", m.configPath)
		return m
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err, "path", m.configPath)
		return m
	}
	if err := config.Validate(cfg); err != nil {
		log.ErrorErr(log.CatConfig, "reloaded config invalid", err, "path", m.configPath)
		return m
	}

	m.screen = m.screen.SetOptions(cfg.Options)
	log.Info(log.CatConfig, "config reloaded", "path", m.configPath)
	return m
}

// Close releases the watcher and the screen's subscription resources.
func (m Model) Close() error {
	m.screen.Cleanup()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

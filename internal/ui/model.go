// Package ui contains the Bubble Tea model for the interactive cleaning
// screen: an input editor and an output pane, each backed by its own undo
// history, plus option toggles and a status bar.
package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/history"
	"github.com/zjrosen/polish/internal/pubsub"
	"github.com/zjrosen/polish/internal/session"
)

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusOutput
)

// spinnerFrames defines the braille spinner animation sequence.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// toastDuration is how long transient status messages stay visible.
const toastDuration = 2 * time.Second

// Model holds the cleaning screen state.
type Model struct {
	session *session.Session
	keys    KeyMap

	input  textarea.Model
	output viewport.Model

	width  int
	height int
	focus  focusArea

	showDiff     bool
	spinnerFrame int

	toast   string
	toastID int

	showStatusBar bool
	wrapWidth     int

	// saveOptions persists the option toggles, wired by the app layer.
	// Nil hides the save action.
	saveOptions func(cleaner.Options) error

	listener *pubsub.ContinuousListener[history.Change[string]]
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates the cleaning screen model. changes may be nil when no
// history notifications are wired (tests).
func New(sess *session.Session, cfg config.UIConfig, changes *pubsub.Broker[history.Change[string]]) Model {
	input := textarea.New()
	input.Placeholder = "Paste or type text to clean..."
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.Focus()

	m := Model{
		session:       sess,
		keys:          DefaultKeyMap(),
		input:         input,
		output:        viewport.New(0, 0),
		showStatusBar: cfg.ShowStatusBar,
		wrapWidth:     cfg.WrapWidth,
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	if changes != nil {
		m.listener = pubsub.NewContinuousListener(m.ctx, changes)
	}
	return m
}

// WithOptionsSaver wires the callback that persists option toggles.
func (m Model) WithOptionsSaver(save func(cleaner.Options) error) Model {
	m.saveOptions = save
	return m
}

// SetOptions replaces the session's option snapshot, used when the config
// file changes on disk.
func (m Model) SetOptions(opts cleaner.Options) Model {
	m.session.SetOptions(opts)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.listener != nil {
		cmds = append(cmds, m.listener.Listen())
	}
	return tea.Batch(cmds...)
}

// spinnerTick returns a command that sends spinnerTickMsg after 80ms.
func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update implements tea.Model and handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.setSize(msg.Width, msg.Height)
		m = m.refreshOutput()
		return m, nil

	case spinnerTickMsg:
		// Only animate while a request is outstanding.
		if m.session.Cleaning() {
			m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
			return m, spinnerTick()
		}
		return m, nil

	case pubsub.Event[history.Change[string]]:
		// Debounced commits fire on a timer goroutine; the event is only
		// a signal to re-render indicators. Always continue listening.
		if m.listener == nil {
			return m, nil
		}
		return m, m.listener.Listen()

	case cleanResultMsg:
		if m.session.ApplyResult(session.Result(msg)) {
			m = m.refreshOutput()
			m.output.GotoTop()
		}
		return m, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			return m.showToast("copy failed: " + msg.err.Error())
		}
		return m.showToast("output copied to clipboard")

	case toastExpireMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToFocused(msg)
}

// handleKey dispatches a key press against the keymap, falling through to
// the focused pane for ordinary typing and scrolling.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Clean):
		return m.startClean()

	case key.Matches(msg, m.keys.Undo):
		m.session.Input().Undo()
		m.input.SetValue(m.session.Input().Value())
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		m.session.Input().Redo()
		m.input.SetValue(m.session.Input().Value())
		return m, nil

	case key.Matches(msg, m.keys.UndoOutput):
		m.session.Output().Undo()
		return m.refreshOutput(), nil

	case key.Matches(msg, m.keys.RedoOutput):
		m.session.Output().Redo()
		return m.refreshOutput(), nil

	case key.Matches(msg, m.keys.Clear):
		m.session.ClearInput()
		m.input.SetValue("")
		return m.refreshOutput(), nil

	case key.Matches(msg, m.keys.Copy):
		text := m.session.Output().Value()
		if text == "" {
			return m.showToast("nothing to copy")
		}
		return m, func() tea.Msg {
			return clipboardDoneMsg{err: clipboard.WriteAll(text)}
		}

	case key.Matches(msg, m.keys.ToggleDiff):
		m.showDiff = !m.showDiff
		return m.refreshOutput(), nil

	case key.Matches(msg, m.keys.ToggleQuotes):
		return m.toggleOption(func(o *sessionOptions) { o.SmartQuotes = !o.SmartQuotes })
	case key.Matches(msg, m.keys.ToggleDashes):
		return m.toggleOption(func(o *sessionOptions) { o.Dashes = !o.Dashes })
	case key.Matches(msg, m.keys.ToggleWhitespace):
		return m.toggleOption(func(o *sessionOptions) { o.Whitespace = !o.Whitespace })
	case key.Matches(msg, m.keys.ToggleMarkdown):
		return m.toggleOption(func(o *sessionOptions) { o.StripMarkdown = !o.StripMarkdown })
	case key.Matches(msg, m.keys.ToggleGrammar):
		return m.toggleOption(func(o *sessionOptions) { o.FixGrammar = !o.FixGrammar })

	case key.Matches(msg, m.keys.SaveOptions):
		if m.saveOptions == nil {
			return m, nil
		}
		if err := m.saveOptions(m.session.Options()); err != nil {
			return m.showToast("save failed: " + err.Error())
		}
		return m.showToast("options saved")

	case key.Matches(msg, m.keys.FocusNext):
		if m.focus == focusInput {
			m.focus = focusOutput
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	return m.forwardToFocused(msg)
}

// startClean force-commits the input text and issues a cleaning request.
// The runner executes on a worker goroutine via the returned command; the
// guard discards its result if a newer request supersedes it.
func (m Model) startClean() (Model, tea.Cmd) {
	m.session.Input().Set(m.input.Value(), true)
	if m.session.Input().Value() == "" {
		return m.showToast("nothing to clean")
	}

	_, run := m.session.IssueClean(m.ctx)
	m.spinnerFrame = 0
	return m, tea.Batch(
		func() tea.Msg { return cleanResultMsg(run()) },
		spinnerTick(),
	)
}

// forwardToFocused routes a message to the pane that currently has focus.
// Input edits feed the history buffer through the debounced path.
func (m Model) forwardToFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusInput {
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.session.Input().Set(after, false)
		}
		return m, cmd
	}
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

// sessionOptions aliases the cleaner option set for the toggle helpers.
type sessionOptions = cleaner.Options

func (m Model) toggleOption(mutate func(*sessionOptions)) (Model, tea.Cmd) {
	opts := m.session.Options()
	mutate(&opts)
	m.session.SetOptions(opts)
	return m, nil
}

// showToast sets a transient status message and schedules its expiry.
func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toast = text
	m.toastID++
	id := m.toastID
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}

// Cleanup releases the subscription context. Call when the program exits.
func (m Model) Cleanup() {
	if m.cancel != nil {
		m.cancel()
	}
}

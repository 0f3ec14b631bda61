package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/config"
	"github.com/zjrosen/polish/internal/session"
)

// TestProgram_RendersAndQuits drives the full program through a terminal
// emulator: it must render both panes and exit cleanly on ctrl+c.
func TestProgram_RendersAndQuits(t *testing.T) {
	sess := session.New(session.Config{
		Cleaner: cleaner.Func(func(_ context.Context, text string, _ cleaner.Options) (string, error) {
			return text, nil
		}),
		Options: cleaner.DefaultOptions(),
	})
	m := New(Deps{Config: config.Defaults(), Session: sess})
	t.Cleanup(func() { _ = m.Close() })

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Input")) && bytes.Contains(b, []byte("Output"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

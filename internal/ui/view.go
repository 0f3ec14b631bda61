package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Fixed chrome rows outside the two panes.
const optionsRowHeight = 1

// setSize recomputes pane dimensions from the terminal size.
func (m Model) setSize(width, height int) Model {
	m.width = width
	m.height = height

	chrome := optionsRowHeight
	if m.showStatusBar {
		chrome++
	}

	// Two bordered panes split the remaining rows; each border eats two
	// rows and two columns.
	paneRows := max(height-chrome, 8)
	inputPaneHeight := paneRows / 2
	outputPaneHeight := paneRows - inputPaneHeight

	innerWidth := max(width-4, 10)
	m.input.SetWidth(innerWidth)
	m.input.SetHeight(max(inputPaneHeight-3, 1))

	m.output.Width = innerWidth
	m.output.Height = max(outputPaneHeight-3, 1)

	return m
}

// refreshOutput re-renders the output viewport from the session's output
// buffer, applying diff markup and wrapping.
func (m Model) refreshOutput() Model {
	content := m.session.Output().Value()
	if m.showDiff {
		content = renderDiff(m.session.Input().Value(), content)
	}

	wrapAt := m.output.Width
	if m.wrapWidth > 0 && m.wrapWidth < wrapAt {
		wrapAt = m.wrapWidth
	}
	if wrapAt > 0 {
		content = wordwrap.String(content, wrapAt)
	}
	m.output.SetContent(content)
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	inputTitle := m.paneTitle("Input", m.session.Input().CanUndo(), m.session.Input().CanRedo())
	outputTitle := m.paneTitle("Output", m.session.Output().CanUndo(), m.session.Output().CanRedo())
	if m.showDiff {
		outputTitle = m.paneTitle("Output (diff)", m.session.Output().CanUndo(), m.session.Output().CanRedo())
	}

	inputPane := paneStyle(m.focus == focusInput, false).
		Width(max(m.width-2, 12)).
		Render(inputTitle + "\n" + m.input.View())

	outputPane := paneStyle(m.focus == focusOutput, m.session.Cleaning()).
		Width(max(m.width-2, 12)).
		Render(outputTitle + "\n" + m.output.View())

	sections := []string{inputPane, outputPane, m.renderOptionsRow()}
	if m.showStatusBar {
		sections = append(sections, m.renderStatusBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// paneTitle renders a pane header with undo/redo availability hints.
func (m Model) paneTitle(name string, canUndo, canRedo bool) string {
	var hints []string
	if canUndo {
		hints = append(hints, "⟲")
	}
	if canRedo {
		hints = append(hints, "⟳")
	}
	title := titleStyle.Render(name)
	if len(hints) > 0 {
		title += " " + historyHintStyle.Render(strings.Join(hints, " "))
	}
	return title
}

// renderOptionsRow shows the five cleaning toggles with their keys.
func (m Model) renderOptionsRow() string {
	opts := m.session.Options()
	items := []struct {
		label string
		key   string
		on    bool
	}{
		{"quotes", "1", opts.SmartQuotes},
		{"dashes", "2", opts.Dashes},
		{"whitespace", "3", opts.Whitespace},
		{"markdown", "4", opts.StripMarkdown},
		{"grammar", "5", opts.FixGrammar},
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		marker := "○"
		style := optionOffStyle
		if item.on {
			marker = "●"
			style = optionOnStyle
		}
		parts = append(parts, style.Render(marker+" "+item.label)+historyHintStyle.Render(" (alt+"+item.key+")"))
	}
	return " " + strings.Join(parts, "  ")
}

// renderStatusBar shows, in priority order: the working spinner, the
// session error, a transient toast, or the key hints.
func (m Model) renderStatusBar() string {
	switch {
	case m.session.Cleaning():
		return " " + workingStyle.Render(spinnerFrames[m.spinnerFrame]+" cleaning...")
	case m.session.Err() != "":
		return " " + errorStyle.Render("error: "+m.session.Err())
	case m.toast != "":
		return " " + toastStyle.Render(m.toast)
	}

	hints := []string{
		"ctrl+g clean",
		"ctrl+z/ctrl+r undo/redo",
		"ctrl+y copy",
		"ctrl+d diff",
		"ctrl+x clear",
		"tab pane",
		"ctrl+c quit",
	}
	return " " + statusBarStyle.Render(strings.Join(hints, " · "))
}

package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusedColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#888888"}
	BorderWorkingColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Diff colors
	DiffInsertColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffDeleteColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Pane titles
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	errorStyle     = lipgloss.NewStyle().Foreground(StatusErrorColor)
	workingStyle   = lipgloss.NewStyle().Foreground(BorderWorkingColor)
	toastStyle     = lipgloss.NewStyle().Foreground(StatusSuccessColor)

	// Option toggles
	optionOnStyle  = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	optionOffStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Diff rendering
	diffInsertStyle = lipgloss.NewStyle().Foreground(DiffInsertColor)
	diffDeleteStyle = lipgloss.NewStyle().Foreground(DiffDeleteColor).Strikethrough(true)

	// History indicators in pane titles
	historyHintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)

// paneStyle returns the bordered pane style with a border color chosen by
// focus and working state.
func paneStyle(focused, working bool) lipgloss.Style {
	color := BorderDefaultColor
	switch {
	case working:
		color = BorderWorkingColor
	case focused:
		color = BorderFocusedColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}

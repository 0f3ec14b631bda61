package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Editing
	Clean      key.Binding
	Undo       key.Binding
	Redo       key.Binding
	UndoOutput key.Binding
	RedoOutput key.Binding
	Clear      key.Binding

	// Output
	Copy       key.Binding
	ToggleDiff key.Binding

	// Options
	ToggleQuotes     key.Binding
	ToggleDashes     key.Binding
	ToggleWhitespace key.Binding
	ToggleMarkdown   key.Binding
	ToggleGrammar    key.Binding

	// General
	SaveOptions key.Binding
	FocusNext   key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clean: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "clean"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		UndoOutput: key.NewBinding(
			key.WithKeys("alt+z"),
			key.WithHelp("alt+z", "undo output"),
		),
		RedoOutput: key.NewBinding(
			key.WithKeys("alt+r"),
			key.WithHelp("alt+r", "redo output"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy output"),
		),
		ToggleDiff: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "toggle diff"),
		),
		ToggleQuotes: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "quotes"),
		),
		ToggleDashes: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "dashes"),
		),
		ToggleWhitespace: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "whitespace"),
		),
		ToggleMarkdown: key.NewBinding(
			key.WithKeys("alt+4"),
			key.WithHelp("alt+4", "markdown"),
		),
		ToggleGrammar: key.NewBinding(
			key.WithKeys("alt+5"),
			key.WithHelp("alt+5", "grammar"),
		),
		SaveOptions: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save options"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

package bubbletea

import "github.com/charmbracelet/bubbles/key"

// WizardKeyMap defines the key bindings for the generation wizard.
type WizardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding

	Next     key.Binding
	Prev     key.Binding
	Generate key.Binding
	Prompt   key.Binding
	Cancel   key.Binding
}

// DefaultWizardKeyMap returns the default key bindings for the wizard.
func DefaultWizardKeyMap() WizardKeyMap {
	return WizardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "select"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "next step"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab", "previous step"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
		Prompt: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "question shortcut"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

package bubbletea

import "github.com/charmbracelet/bubbles/key"

// StoriesKeyMap defines the key bindings for the story list screen.
type StoriesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding

	Filter   key.Binding
	CycleTag key.Binding
	Reload   key.Binding

	Section key.Binding

	Edit       key.Binding
	Delete     key.Binding
	Analyze    key.Binding
	Suggest    key.Binding
	Variations key.Binding
	CopyStory  key.Binding

	NextField key.Binding
	PrevField key.Binding
	Commit    key.Binding
	Cancel    key.Binding

	Confirm key.Binding
	Deny    key.Binding

	Quit key.Binding
}

// DefaultStoriesKeyMap returns the default key bindings for the story list.
func DefaultStoriesKeyMap() StoriesKeyMap {
	return StoriesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		CycleTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme tag"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Section: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "focus STAR section"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "analyze"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "suggestions"),
		),
		Variations: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "variations"),
		),
		CopyStory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy story"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "keep"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

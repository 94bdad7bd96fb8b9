package starprep

// ColorPair represents a foreground and background color combination.
// Colors are hex strings in "#RRGGBB" format; empty strings mean no
// override (use the terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of the client.
type Styles struct {
	Title         ColorPair // Screen and story titles
	SectionHeader ColorPair // STAR section headers
	Selected      ColorPair // Cursor row / selected item
	Badge         ColorPair // Theme and key-theme badges
	Muted         ColorPair // Secondary text, hints, timestamps
	Error         ColorPair // Validation and collaborator errors
	Warning       ColorPair // Local-only / unsaved warnings
	Success       ColorPair // Confirmation messages
	StatusBar     ColorPair // Bottom status bar
}

// Theme provides styles for rendering the client.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}

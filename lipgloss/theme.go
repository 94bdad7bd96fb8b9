// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/starprep"

// Compile-time interface verification.
var _ starprep.Theme = (*Theme)(nil)

// Theme implements starprep.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles starprep.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() starprep.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds
// (Catppuccin Mocha).
func DarkTheme() *Theme {
	return &Theme{
		styles: starprep.Styles{
			Title: starprep.ColorPair{
				Foreground: "#cdd6f4",
			},
			SectionHeader: starprep.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
			Selected: starprep.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#89b4fa", // Blue highlight
			},
			Badge: starprep.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#cba6f7", // Mauve
			},
			Muted: starprep.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Error: starprep.ColorPair{
				Foreground: "#f38ba8", // Red
			},
			Warning: starprep.ColorPair{
				Foreground: "#f9e2af", // Yellow
			},
			Success: starprep.ColorPair{
				Foreground: "#a6e3a1", // Green
			},
			StatusBar: starprep.ColorPair{
				Foreground: "#a6adc8",
				Background: "#313244", // Dark surface
			},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds
// (Catppuccin Latte).
func LightTheme() *Theme {
	return &Theme{
		styles: starprep.Styles{
			Title: starprep.ColorPair{
				Foreground: "#4c4f69",
			},
			SectionHeader: starprep.ColorPair{
				Foreground: "#1e66f5", // Blue
			},
			Selected: starprep.ColorPair{
				Foreground: "#eff1f5",
				Background: "#1e66f5",
			},
			Badge: starprep.ColorPair{
				Foreground: "#eff1f5",
				Background: "#8839ef", // Mauve
			},
			Muted: starprep.ColorPair{
				Foreground: "#9ca0b0",
			},
			Error: starprep.ColorPair{
				Foreground: "#d20f39", // Red
			},
			Warning: starprep.ColorPair{
				Foreground: "#df8e1d", // Yellow
			},
			Success: starprep.ColorPair{
				Foreground: "#40a02b", // Green
			},
			StatusBar: starprep.ColorPair{
				Foreground: "#5c5f77",
				Background: "#e6e9ef", // Light surface
			},
		},
	}
}

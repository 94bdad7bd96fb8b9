package bubbletea

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/starprep"
)

// styleFor builds a lipgloss style from a color pair, using renderer when
// set so tests can pin a color profile.
func styleFor(renderer *lipgloss.Renderer, pair starprep.ColorPair) lipgloss.Style {
	var s lipgloss.Style
	if renderer != nil {
		s = renderer.NewStyle()
	} else {
		s = lipgloss.NewStyle()
	}
	if pair.Foreground != "" {
		s = s.Foreground(lipgloss.Color(pair.Foreground))
	}
	if pair.Background != "" {
		s = s.Background(lipgloss.Color(pair.Background))
	}
	return s
}

// defaultStyles returns the styles used when no theme is configured.
func defaultStyles() starprep.Styles {
	return starprep.Styles{
		SectionHeader: starprep.ColorPair{Foreground: "#89b4fa"},
		Selected:      starprep.ColorPair{Foreground: "#1e1e2e", Background: "#89b4fa"},
		Badge:         starprep.ColorPair{Foreground: "#1e1e2e", Background: "#cba6f7"},
		Muted:         starprep.ColorPair{Foreground: "#6c7086"},
		Error:         starprep.ColorPair{Foreground: "#f38ba8"},
		Warning:       starprep.ColorPair{Foreground: "#f9e2af"},
		Success:       starprep.ColorPair{Foreground: "#a6e3a1"},
		StatusBar:     starprep.ColorPair{Foreground: "#a6adc8", Background: "#313244"},
	}
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

package starprep

import (
	"fmt"
	"strings"
)

// FormatStory renders a story as plain text suitable for pasting into a
// document or interview prep notes.
func FormatStory(s Story) string {
	var b strings.Builder

	b.WriteString(s.Title)
	b.WriteString("\n")
	if s.Theme != "" {
		fmt.Fprintf(&b, "Theme: %s\n", s.Theme)
	}
	if s.CompanyContext != "" {
		fmt.Fprintf(&b, "Company: %s\n", s.CompanyContext)
	}

	sections := []struct {
		label string
		text  string
	}{
		{"Situation", s.Situation},
		{"Task", s.Task},
		{"Action", s.Action},
		{"Result", s.Result},
	}
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s\n%s\n", sec.label, sec.text)
	}

	if len(s.KeyThemes) > 0 {
		fmt.Fprintf(&b, "\nKey themes: %s\n", strings.Join(s.KeyThemes, ", "))
	}
	if len(s.TalkingPoints) > 0 {
		b.WriteString("\nTalking points:\n")
		for _, p := range s.TalkingPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	return b.String()
}

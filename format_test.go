package starprep_test

import (
	"testing"

	"github.com/fwojciec/starprep"
	"github.com/stretchr/testify/assert"
)

func TestFormatStory(t *testing.T) {
	t.Parallel()

	s := starprep.Story{
		Title:         "Led Incident Response",
		Theme:         "Leadership Challenge",
		Situation:     "The pager would not stop.",
		Task:          "Restore service.",
		Action:        "Coordinated three teams.",
		Result:        "Back up in 40 minutes.",
		KeyThemes:     []string{"Ops", "Leadership"},
		TalkingPoints: []string{"Mention the comms doc"},
	}

	got := starprep.FormatStory(s)

	assert.Contains(t, got, "Led Incident Response")
	assert.Contains(t, got, "Theme: Leadership Challenge")
	assert.Contains(t, got, "Situation\nThe pager would not stop.")
	assert.Contains(t, got, "Result\nBack up in 40 minutes.")
	assert.Contains(t, got, "Key themes: Ops, Leadership")
	assert.Contains(t, got, "- Mention the comms doc")
}

func TestFormatStory_OmitsEmptyOptionalSections(t *testing.T) {
	t.Parallel()

	got := starprep.FormatStory(starprep.Story{Title: "X", Situation: "S", Task: "T", Action: "A", Result: "R"})

	assert.NotContains(t, got, "Theme:")
	assert.NotContains(t, got, "Key themes:")
	assert.NotContains(t, got, "Talking points:")
}

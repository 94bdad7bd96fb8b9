package starprep_test

import (
	"testing"

	"github.com/fwojciec/starprep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeStory() starprep.Story {
	return starprep.Story{
		Title:     "T",
		Situation: "S",
		Task:      "K",
		Action:    "A",
		Result:    "R",
	}
}

func TestValidateStory_AllFivePresentPasses(t *testing.T) {
	t.Parallel()

	s := completeStory()

	assert.NoError(t, starprep.ValidateStory(s), "single characters are enough")
}

func TestValidateStory_EmptyEnrichmentsAreFine(t *testing.T) {
	t.Parallel()

	s := completeStory()
	s.KeyThemes = nil
	s.TalkingPoints = nil

	assert.NoError(t, starprep.ValidateStory(s))
}

func TestValidateStory_AnyMissingRequiredFieldFails(t *testing.T) {
	t.Parallel()

	fields := []struct {
		name  string
		blank func(*starprep.Story)
	}{
		{"title", func(s *starprep.Story) { s.Title = "" }},
		{"situation", func(s *starprep.Story) { s.Situation = "" }},
		{"task", func(s *starprep.Story) { s.Task = "" }},
		{"action", func(s *starprep.Story) { s.Action = "" }},
		{"result", func(s *starprep.Story) { s.Result = "" }},
	}

	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := completeStory()
			tt.blank(&s)

			err := starprep.ValidateStory(s)
			require.Error(t, err)

			var verr *starprep.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Missing, tt.name)
		})
	}
}

func TestAddEntry_RejectsWhitespaceWithoutClearingInput(t *testing.T) {
	t.Parallel()

	entries := []string{"Leadership"}

	updated, remaining := starprep.AddEntry(entries, "   ")

	assert.Equal(t, []string{"Leadership"}, updated)
	assert.Equal(t, "   ", remaining, "rejected input is left for the user to fix")
}

func TestAddEntry_TrimsAndClearsOnSuccess(t *testing.T) {
	t.Parallel()

	updated, remaining := starprep.AddEntry(nil, "  Ops  ")

	assert.Equal(t, []string{"Ops"}, updated)
	assert.Empty(t, remaining)
}

func TestAddEntry_AllowsDuplicatesInOrder(t *testing.T) {
	t.Parallel()

	entries, _ := starprep.AddEntry(nil, "Ops")
	entries, _ = starprep.AddEntry(entries, "Ops")

	assert.Equal(t, []string{"Ops", "Ops"}, entries)
}

func TestRemoveEntry(t *testing.T) {
	t.Parallel()

	entries := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "c"}, starprep.RemoveEntry(entries, 1))
	assert.Equal(t, entries, starprep.RemoveEntry(entries, -1))
	assert.Equal(t, entries, starprep.RemoveEntry(entries, 3))
}

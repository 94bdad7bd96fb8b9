package starprep_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/starprep"
	"github.com/fwojciec/starprep/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_StartThenCancelLeavesStoryUntouched(t *testing.T) {
	t.Parallel()

	original := completeStory()
	original.ID = 7
	original.KeyThemes = []string{"Ops"}

	e := starprep.NewEditor()
	require.True(t, e.Start(original))

	e.SetField(starprep.FieldTitle, "changed")
	e.Cancel()

	assert.False(t, e.Editing())
	assert.Equal(t, int64(7), original.ID, "caller's story is a value, never mutated")
	assert.Equal(t, "T", original.Title)
}

func TestEditor_OnlyOneSessionAtATime(t *testing.T) {
	t.Parallel()

	e := starprep.NewEditor()
	first := completeStory()
	first.ID = 1
	second := completeStory()
	second.ID = 2

	require.True(t, e.Start(first))
	assert.False(t, e.Start(second), "second start is a silent no-op")
	assert.Equal(t, "s1", e.EditingKey())
}

func TestEditor_CommitSendsOnlyEditableFields(t *testing.T) {
	t.Parallel()

	story := completeStory()
	story.ID = 7
	story.CreatedAt = "2026-01-02T03:04:05Z"

	var gotID int64
	var gotPatch starprep.StoryPatch
	svc := &mock.StoryService{
		UpdateStoryFn: func(_ context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
			gotID = id
			gotPatch = patch
			updated := story
			updated.Title = patch.Title
			updated.UpdatedAt = "2026-01-03T00:00:00Z"
			return updated, nil
		},
	}

	e := starprep.NewEditor()
	require.True(t, e.Start(story))
	e.SetField(starprep.FieldTitle, "Better title")

	committed, err := e.Commit(context.Background(), svc)

	require.NoError(t, err)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, "Better title", gotPatch.Title)
	assert.Equal(t, "Better title", committed.Title)
	assert.Equal(t, "2026-01-03T00:00:00Z", committed.UpdatedAt)
	assert.False(t, e.Editing(), "session closed on success")
}

func TestEditor_CommitFailureKeepsSessionOpen(t *testing.T) {
	t.Parallel()

	story := completeStory()
	story.ID = 7

	svc := &mock.StoryService{
		UpdateStoryFn: func(context.Context, int64, starprep.StoryPatch) (starprep.Story, error) {
			return starprep.Story{}, errors.New("service unavailable")
		},
	}

	e := starprep.NewEditor()
	require.True(t, e.Start(story))
	e.SetField(starprep.FieldResult, "new result")

	_, err := e.Commit(context.Background(), svc)

	require.Error(t, err)
	assert.True(t, e.Editing(), "user is free to retry or cancel")
	assert.Equal(t, "new result", e.Working().Result, "edits survive the failure")
}

func TestEditor_CommitLocalOnlyStorySkipsNetwork(t *testing.T) {
	t.Parallel()

	story := completeStory()
	story.LocalKey = "draft-1"
	story.Unsaved = true

	// No UpdateStoryFn wired: a call would panic the test.
	svc := &mock.StoryService{}

	e := starprep.NewEditor()
	require.True(t, e.Start(story))
	e.SetField(starprep.FieldAction, "refined action")

	committed, err := e.Commit(context.Background(), svc)

	require.NoError(t, err)
	assert.Equal(t, "refined action", committed.Action)
	assert.Equal(t, "draft-1", committed.LocalKey)
	assert.False(t, e.Editing())
}

func TestEditor_CommitValidationGateBlocksEmptyRequiredField(t *testing.T) {
	t.Parallel()

	story := completeStory()
	story.ID = 7

	svc := &mock.StoryService{
		UpdateStoryFn: func(context.Context, int64, starprep.StoryPatch) (starprep.Story, error) {
			t.Fatal("no network call on validation failure")
			return starprep.Story{}, nil
		},
	}

	e := starprep.NewEditor()
	require.True(t, e.Start(story))
	e.SetField(starprep.FieldSituation, "")

	_, err := e.Commit(context.Background(), svc)

	var verr *starprep.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, e.Editing())
}

func TestEditor_AddThemeFollowsAdmissionPolicy(t *testing.T) {
	t.Parallel()

	e := starprep.NewEditor()
	require.True(t, e.Start(completeStory()))

	remaining := e.AddTheme("  Ops  ")
	assert.Empty(t, remaining)
	assert.Equal(t, []string{"Ops"}, e.Working().KeyThemes)

	remaining = e.AddTheme("   ")
	assert.Equal(t, "   ", remaining)
	assert.Equal(t, []string{"Ops"}, e.Working().KeyThemes)
}

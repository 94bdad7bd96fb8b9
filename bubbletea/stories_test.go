package bubbletea_test

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/starprep"
	"github.com/fwojciec/starprep/bubbletea"
	"github.com/fwojciec/starprep/mock"
)

// runStoriesCmd executes cmd and feeds the resulting messages back into the
// model until nothing is pending. Spinner ticks are dropped so the loop
// terminates.
func runStoriesCmd(t *testing.T, m bubbletea.StoriesModel, cmd tea.Cmd) bubbletea.StoriesModel {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			var followup tea.Cmd
			m, followup = m.Update(msg)
			queue = append(queue, followup)
		}
	}
	return m
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testStories() []starprep.Story {
	return []starprep.Story{
		{
			ID:        1,
			Title:     "Migrated the billing system",
			Situation: "Legacy billing was failing",
			Task:      "Lead the migration",
			Action:    "Planned a phased cutover",
			Result:    "Zero-downtime migration",
			Theme:     "Leadership Challenge",
			KeyThemes: []string{"migration", "leadership"},
		},
		{
			ID:        2,
			Title:     "Resolved an outage dispute",
			Situation: "Two teams blamed each other",
			Task:      "Find the root cause",
			Action:    "Ran a blameless postmortem",
			Result:    "Shipped a shared runbook",
			Theme:     "Conflict Resolution",
		},
	}
}

// asciiRenderer strips color sequences so views can be asserted as plain text.
func asciiRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(nil, termenv.WithProfile(termenv.Ascii))
}

func sizedStoriesModel(t *testing.T, svc starprep.StoryService, opts ...bubbletea.StoriesOption) bubbletea.StoriesModel {
	t.Helper()

	opts = append([]bubbletea.StoriesOption{
		bubbletea.WithStoriesRenderer(asciiRenderer()),
	}, opts...)
	m := bubbletea.NewStoriesModel(svc, opts...)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestStoriesModel_ViewBeforeReady(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewStoriesModel(&mock.StoryService{})
	assert.Contains(t, m.View(), "Loading")
}

func TestStoriesModel_LoadsOnInit(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		ListStoriesFn: func(ctx context.Context) ([]starprep.Story, error) {
			return testStories(), nil
		},
	}
	m := sizedStoriesModel(t, svc)
	m = runStoriesCmd(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "Migrated the billing system")
	assert.Contains(t, view, "Resolved an outage dispute")
}

func TestStoriesModel_LoadErrorShown(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		ListStoriesFn: func(ctx context.Context) ([]starprep.Story, error) {
			return nil, errors.New("connection refused")
		},
	}
	m := sizedStoriesModel(t, svc)
	m = runStoriesCmd(t, m, m.Init())

	assert.Contains(t, m.View(), "connection refused")
}

func TestStoriesModel_EmptyState(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{}, bubbletea.WithInitialStories(nil))

	assert.Contains(t, m.View(), "No stories yet")
}

func TestStoriesModel_ToggleExpandsDetail(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	assert.NotContains(t, m.View(), "Legacy billing was failing")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "Legacy billing was failing")
	assert.Contains(t, view, "Zero-downtime migration")

	// Expanding one story leaves the other collapsed.
	assert.NotContains(t, view, "Two teams blamed each other")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, m.View(), "Legacy billing was failing")
}

func TestStoriesModel_IndependentExpansion(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyRunes('j'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "Legacy billing was failing")
	assert.Contains(t, view, "Two teams blamed each other")
}

func TestStoriesModel_SectionFocusIsExclusive(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	// A focused section renders its text indented on its own line; the
	// others collapse to a single label-plus-summary line.
	m, _ = m.Update(keyRunes('1'))
	view := m.View()
	assert.Contains(t, view, "    Legacy billing was failing")
	assert.Contains(t, view, "Action Planned a phased cutover")

	// Focusing another section unfocuses the first.
	m, _ = m.Update(keyRunes('3'))
	view = m.View()
	assert.Contains(t, view, "    Planned a phased cutover")
	assert.Contains(t, view, "Situation Legacy billing was failing")
	assert.NotContains(t, view, "    Legacy billing was failing")

	// Toggling the focused section off restores the full detail view.
	m, _ = m.Update(keyRunes('3'))
	view = m.View()
	assert.Contains(t, view, "    Legacy billing was failing")
	assert.Contains(t, view, "    Planned a phased cutover")
	assert.Contains(t, view, "    Zero-downtime migration")
}

func TestStoriesModel_ChallengeQuestionsOnFocusedSection(t *testing.T) {
	t.Parallel()

	story := testStories()[0]
	story.Guidance = starprep.NewGuidance()
	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories([]starprep.Story{story}))

	challenge := story.Guidance.ChallengeQuestions[starprep.SectionSituation]
	require.NotEmpty(t, challenge)

	// Challenge questions appear only when the section is focused.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotContains(t, m.View(), challenge[0])

	m, _ = m.Update(keyRunes('1'))
	assert.Contains(t, m.View(), challenge[0])
}

func TestStoriesModel_TextFilter(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('/'))
	for _, r := range "billing" {
		m, _ = m.Update(keyRunes(r))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "Migrated the billing system")
	assert.NotContains(t, view, "Resolved an outage dispute")
}

func TestStoriesModel_FilterEscClears(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('/'))
	for _, r := range "billing" {
		m, _ = m.Update(keyRunes(r))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Contains(t, m.View(), "Resolved an outage dispute")
}

func TestStoriesModel_TagFilterCycles(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	// First press selects the first theme, Leadership Challenge.
	m, _ = m.Update(keyRunes('t'))
	view := m.View()
	assert.Contains(t, view, "Migrated the billing system")
	assert.NotContains(t, view, "Resolved an outage dispute")

	// Cycling through every theme lands back on no filter.
	for range starprep.StoryThemes {
		m, _ = m.Update(keyRunes('t'))
	}
	assert.Contains(t, m.View(), "Resolved an outage dispute")
}

func TestStoriesModel_DeleteRequiresConfirmation(t *testing.T) {
	t.Parallel()

	deleted := false
	svc := &mock.StoryService{
		DeleteStoryFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('d'))
	assert.Contains(t, m.View(), "y/n")
	assert.False(t, deleted)

	// Denying leaves the story in place.
	m, _ = m.Update(keyRunes('n'))
	assert.False(t, deleted)
	assert.Contains(t, m.View(), "Migrated the billing system")

	// Confirming removes it.
	m, _ = m.Update(keyRunes('d'))
	var cmd tea.Cmd
	m, cmd = m.Update(keyRunes('y'))
	m = runStoriesCmd(t, m, cmd)

	assert.True(t, deleted)
	assert.NotContains(t, m.View(), "Migrated the billing system")
	assert.Contains(t, m.View(), "Resolved an outage dispute")
}

func TestStoriesModel_DeleteLocalDraftSkipsService(t *testing.T) {
	t.Parallel()

	draft := starprep.Story{
		LocalKey:  "local-1",
		Title:     "Unsaved draft",
		Situation: "s", Task: "t", Action: "a", Result: "r",
		Unsaved: true,
	}
	svc := &mock.StoryService{
		DeleteStoryFn: func(ctx context.Context, id int64) error {
			t.Fatal("DeleteStory must not be called for a local draft")
			return nil
		},
	}
	m := sizedStoriesModel(t, svc,
		bubbletea.WithInitialStories([]starprep.Story{draft}))

	m, _ = m.Update(keyRunes('d'))
	m, _ = m.Update(keyRunes('y'))

	assert.NotContains(t, m.View(), "Unsaved draft")
}

func TestStoriesModel_DeleteFailureKeepsStory(t *testing.T) {
	t.Parallel()

	calls := 0
	svc := &mock.StoryService{
		DeleteStoryFn: func(ctx context.Context, id int64) error {
			calls++
			if calls == 1 {
				return errors.New("backend unavailable")
			}
			return nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('d'))
	m, cmd := m.Update(keyRunes('y'))
	m = runStoriesCmd(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "backend unavailable")
	assert.Contains(t, view, "Migrated the billing system")
	assert.Contains(t, view, "Resolved an outage dispute")

	// The pending slot clears on failure so the delete can be retried.
	m, _ = m.Update(keyRunes('d'))
	m, cmd = m.Update(keyRunes('y'))
	m = runStoriesCmd(t, m, cmd)

	assert.Equal(t, 2, calls)
	assert.NotContains(t, m.View(), "Migrated the billing system")
}

func TestStoriesModel_AnalyzeAttachesResult(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		AnalyzeStoryFn: func(ctx context.Context, id int64) (*starprep.Analysis, error) {
			require.Equal(t, int64(1), id)
			return &starprep.Analysis{
				OverallScore: 87,
				Strengths:    []string{"clear outcome"},
				Improvements: []string{"quantify the result"},
			}, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	var cmd tea.Cmd
	m, cmd = m.Update(keyRunes('a'))
	m = runStoriesCmd(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "87/100")
	assert.Contains(t, view, "clear outcome")
	assert.Contains(t, view, "quantify the result")
}

func TestStoriesModel_AnalyzeDoubleSubmitGuard(t *testing.T) {
	t.Parallel()

	calls := 0
	svc := &mock.StoryService{
		AnalyzeStoryFn: func(ctx context.Context, id int64) (*starprep.Analysis, error) {
			calls++
			return &starprep.Analysis{}, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, first := m.Update(keyRunes('a'))
	// Second press before the first resolves must not produce a command.
	m, second := m.Update(keyRunes('a'))
	assert.Nil(t, second)

	m = runStoriesCmd(t, m, first)
	assert.Equal(t, 1, calls)

	// After the first resolves the control is usable again.
	m, third := m.Update(keyRunes('a'))
	assert.NotNil(t, third)
	_ = m
}

func TestStoriesModel_AnalyzeSkipsLocalDraft(t *testing.T) {
	t.Parallel()

	draft := starprep.Story{
		LocalKey:  "local-1",
		Title:     "Unsaved draft",
		Situation: "s", Task: "t", Action: "a", Result: "r",
	}
	svc := &mock.StoryService{
		AnalyzeStoryFn: func(ctx context.Context, id int64) (*starprep.Analysis, error) {
			t.Fatal("AnalyzeStory must not be called for a local draft")
			return nil, nil
		},
	}
	m := sizedStoriesModel(t, svc,
		bubbletea.WithInitialStories([]starprep.Story{draft}))

	_, cmd := m.Update(keyRunes('a'))
	assert.Nil(t, cmd)
}

func TestStoriesModel_SuggestionsShown(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		StorySuggestionsFn: func(ctx context.Context, id int64) (*starprep.Suggestions, error) {
			return &starprep.Suggestions{BySection: map[string][]string{
				starprep.SectionAction: {"name the stakeholders"},
			}}, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	var cmd tea.Cmd
	m, cmd = m.Update(keyRunes('s'))
	m = runStoriesCmd(t, m, cmd)

	assert.Contains(t, m.View(), "name the stakeholders")
}

func TestStoriesModel_VariationsShown(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		StoryVariationsFn: func(ctx context.Context, req starprep.VariationsRequest) (*starprep.Variations, error) {
			require.Equal(t, int64(1), req.StoryID)
			return &starprep.Variations{Variations: []starprep.Variation{
				{Context: "technical interview", Tone: "concise", Title: "The billing cutover"},
			}}, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	var cmd tea.Cmd
	m, cmd = m.Update(keyRunes('v'))
	m = runStoriesCmd(t, m, cmd)

	assert.Contains(t, m.View(), "The billing cutover")
}

func TestStoriesModel_EditCommitSendsPatch(t *testing.T) {
	t.Parallel()

	var gotPatch starprep.StoryPatch
	svc := &mock.StoryService{
		UpdateStoryFn: func(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
			require.Equal(t, int64(1), id)
			gotPatch = patch
			updated := testStories()[0]
			updated.Title = patch.Title
			return updated, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('e'))
	// The title field is focused first; replace it.
	for range "Migrated the billing system" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	for _, r := range "Rescued the billing migration" {
		m, _ = m.Update(keyRunes(r))
	}

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = runStoriesCmd(t, m, cmd)

	assert.Equal(t, "Rescued the billing migration", gotPatch.Title)
	assert.Equal(t, "Legacy billing was failing", gotPatch.Situation)
	assert.Contains(t, m.View(), "Rescued the billing migration")
	assert.NotContains(t, m.View(), "Migrated the billing system")
}

func TestStoriesModel_EditFailureKeepsSession(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		UpdateStoryFn: func(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
			return starprep.Story{}, errors.New("server unavailable")
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('e'))
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = runStoriesCmd(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "server unavailable")
	// Still in edit mode: the save hint is shown.
	assert.Contains(t, view, "ctrl+s:save")
}

func TestStoriesModel_EditCancelDiscards(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		UpdateStoryFn: func(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
			t.Fatal("UpdateStory must not be called on cancel")
			return starprep.Story{}, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('e'))
	for _, r := range " EDITED" {
		m, _ = m.Update(keyRunes(r))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.NotContains(t, m.View(), "EDITED")
	assert.Contains(t, m.View(), "Migrated the billing system")
}

func TestStoriesModel_EditValidationBlocksCommit(t *testing.T) {
	t.Parallel()

	svc := &mock.StoryService{
		UpdateStoryFn: func(ctx context.Context, id int64, patch starprep.StoryPatch) (starprep.Story, error) {
			t.Fatal("UpdateStory must not be called with an invalid story")
			return starprep.Story{}, nil
		},
	}
	m := sizedStoriesModel(t, svc, bubbletea.WithInitialStories(testStories()))

	m, _ = m.Update(keyRunes('e'))
	for range "Migrated the billing system" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "title")
}

func TestStoriesModel_ReloadKeepsLocalDrafts(t *testing.T) {
	t.Parallel()

	draft := starprep.Story{
		LocalKey: "local-1",
		Title:    "Unsaved draft",
		Unsaved:  true,
	}
	svc := &mock.StoryService{
		ListStoriesFn: func(ctx context.Context) ([]starprep.Story, error) {
			return testStories(), nil
		},
	}
	m := sizedStoriesModel(t, svc,
		bubbletea.WithInitialStories([]starprep.Story{draft}))

	m, cmd := m.Update(keyRunes('r'))
	m = runStoriesCmd(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "Unsaved draft")
	assert.Contains(t, view, "Migrated the billing system")
}

func TestStoriesModel_MergeStory(t *testing.T) {
	t.Parallel()

	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()))

	t.Run("new story is prepended", func(t *testing.T) {
		merged := m
		merged.MergeStory(starprep.Story{
			LocalKey: "local-1",
			Title:    "Fresh generated story",
			Unsaved:  true,
		})
		view := merged.View()
		assert.Contains(t, view, "Fresh generated story")
		assert.Contains(t, view, "not saved")
		assert.Len(t, merged.Stories(), 3)
	})

	t.Run("existing story is replaced in place", func(t *testing.T) {
		merged := m
		updated := testStories()[0]
		updated.Title = "Retitled story"
		merged.MergeStory(updated)
		view := merged.View()
		assert.Contains(t, view, "Retitled story")
		assert.NotContains(t, view, "Migrated the billing system")
		assert.Len(t, merged.Stories(), 2)
	})
}

func TestStoriesModel_CopyStory(t *testing.T) {
	t.Parallel()

	var copied string
	clip := &mock.Clipboard{
		CopyFn: func(content string) error {
			copied = content
			return nil
		},
	}
	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories(testStories()),
		bubbletea.WithClipboard(clip))

	m, _ = m.Update(keyRunes('c'))

	assert.Contains(t, copied, "Migrated the billing system")
	assert.Contains(t, copied, "Legacy billing was failing")
	assert.Contains(t, m.View(), "copied")
}

func TestStoriesModel_GuidanceShownWhenExpanded(t *testing.T) {
	t.Parallel()

	story := testStories()[0]
	story.Guidance = starprep.NewGuidance()
	m := sizedStoriesModel(t, &mock.StoryService{},
		bubbletea.WithInitialStories([]starprep.Story{story}))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	probing := story.Guidance.ProbingQuestions[starprep.SectionSituation]
	require.NotEmpty(t, probing)
	assert.Contains(t, m.View(), probing[0])
}

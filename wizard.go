package starprep

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// DefaultTone is the tone preselected in a fresh wizard.
const DefaultTone = "professional"

// Tones a story can be generated in. The first entry is the default.
var Tones = []string{"professional", "conversational", "concise", "enthusiastic"}

// StoryThemes are the categorical labels offered for generation.
var StoryThemes = []string{
	"Leadership Challenge",
	"Conflict Resolution",
	"Technical Problem Solving",
	"Failure & Learning",
	"Teamwork",
	"Initiative & Innovation",
}

// Prompt is a question shortcut that preselects a matching theme.
type Prompt struct {
	Question string
	Theme    string
}

// Prompts offered as generation shortcuts.
var Prompts = []Prompt{
	{Question: "Tell me about a time you led a team through a difficult change.", Theme: "Leadership Challenge"},
	{Question: "Describe a disagreement with a colleague and how you resolved it.", Theme: "Conflict Resolution"},
	{Question: "Walk me through the hardest technical problem you've solved.", Theme: "Technical Problem Solving"},
	{Question: "Tell me about a time you failed and what you learned.", Theme: "Failure & Learning"},
}

// GenerateOutcome is the result of a generate-and-save attempt that
// produced a story. Warning is set when the story could only be kept
// locally (generation succeeded but the save failed).
type GenerateOutcome struct {
	Story   Story
	Warning string
}

// Wizard orchestrates the multi-step story generation flow: multi-select
// of source experiences, single-select of theme and tone, and a
// generate-then-save action against the collaborators.
type Wizard struct {
	experiences []Experience
	selected    map[int]bool
	theme       string
	tone        string
	company     string
	generating  bool
}

// NewWizard creates a Wizard over the given experiences with the default
// tone and nothing selected.
func NewWizard(experiences []Experience) *Wizard {
	return &Wizard{
		experiences: experiences,
		selected:    make(map[int]bool),
		tone:        DefaultTone,
	}
}

// Experiences returns the source experiences the wizard selects from.
func (w *Wizard) Experiences() []Experience {
	return w.experiences
}

// ToggleExperience flips membership of index in the selection. Indices
// outside the experience list are ignored.
func (w *Wizard) ToggleExperience(index int) {
	if index < 0 || index >= len(w.experiences) {
		return
	}
	if w.selected[index] {
		delete(w.selected, index)
		return
	}
	w.selected[index] = true
}

// SelectedIndices returns the selected experience indices in ascending order.
func (w *Wizard) SelectedIndices() []int {
	indices := make([]int, 0, len(w.selected))
	for i := range w.selected {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// SelectedCount returns how many experiences are selected.
func (w *Wizard) SelectedCount() int {
	return len(w.selected)
}

// ExperienceSelected reports whether index is selected.
func (w *Wizard) ExperienceSelected(index int) bool {
	return w.selected[index]
}

// SetTheme replaces the selected theme.
func (w *Wizard) SetTheme(theme string) {
	w.theme = theme
}

// Theme returns the selected theme, or "" when none is chosen yet.
func (w *Wizard) Theme() string {
	return w.theme
}

// SetTone replaces the selected tone.
func (w *Wizard) SetTone(tone string) {
	w.tone = tone
}

// Tone returns the selected tone.
func (w *Wizard) Tone() string {
	return w.tone
}

// SetCompanyContext sets the optional company context.
func (w *Wizard) SetCompanyContext(company string) {
	w.company = company
}

// CompanyContext returns the optional company context.
func (w *Wizard) CompanyContext() string {
	return w.company
}

// ApplyPrompt selects a prompt shortcut, which also force-sets the theme.
func (w *Wizard) ApplyPrompt(p Prompt) {
	w.theme = p.Theme
}

// Generating reports whether a generate action is in flight.
func (w *Wizard) Generating() bool {
	return w.generating
}

// BeginGenerate validates the wizard preconditions and, when satisfied,
// marks the wizard as generating and returns the request to hand to the
// collaborators. On a validation failure no collaborator may be called
// and the wizard state is unchanged.
func (w *Wizard) BeginGenerate() (GenerateRequest, error) {
	if len(w.selected) == 0 {
		return GenerateRequest{}, ErrNoExperiences
	}
	if w.theme == "" {
		return GenerateRequest{}, ErrNoTheme
	}

	indices := w.SelectedIndices()
	selected := make([]Experience, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, w.experiences[i])
	}

	w.generating = true
	return GenerateRequest{
		ExperienceIndices: indices,
		Experiences:       selected,
		Theme:             w.theme,
		Tone:              w.tone,
		CompanyContext:    w.company,
	}, nil
}

// FinishGenerate resets the generating flag. When a story was produced
// (full or partial success) the selection is cleared for the next run.
func (w *Wizard) FinishGenerate(produced bool) {
	w.generating = false
	if produced {
		clear(w.selected)
	}
}

// Generate runs the full flow synchronously: validate, generate, save,
// and update wizard state. The TUI splits this into BeginGenerate, a
// GenerateAndSave command, and FinishGenerate so the event loop never
// blocks; the semantics are identical.
func (w *Wizard) Generate(ctx context.Context, gen StoryGenerator, svc StoryService) (GenerateOutcome, error) {
	req, err := w.BeginGenerate()
	if err != nil {
		return GenerateOutcome{}, err
	}

	outcome, err := GenerateAndSave(ctx, gen, svc, req)
	w.FinishGenerate(err == nil)
	return outcome, err
}

// GenerateAndSave asks gen for a draft story and immediately persists it
// through svc. The save is only attempted after generation resolves
// successfully. A failed save degrades gracefully: the generated content
// is returned as a local-only story with a warning instead of being
// discarded. Guidance prompts are attached client-side in every case.
func GenerateAndSave(ctx context.Context, gen StoryGenerator, svc StoryService, req GenerateRequest) (GenerateOutcome, error) {
	draft, err := gen.GenerateStory(ctx, req)
	if err != nil {
		return GenerateOutcome{}, err
	}

	draft.ID = 0
	draft.LocalKey = uuid.NewString()
	draft.Theme = req.Theme
	draft.CompanyContext = req.CompanyContext
	draft.ExperienceIndices = req.ExperienceIndices
	draft.Guidance = NewGuidance()

	saved, err := svc.CreateStory(ctx, draft)
	if err != nil {
		draft.Unsaved = true
		return GenerateOutcome{
			Story:   draft,
			Warning: "story generated but could not be saved: " + err.Error(),
		}, nil
	}

	saved.LocalKey = draft.LocalKey
	saved.Guidance = draft.Guidance
	return GenerateOutcome{Story: saved}, nil
}

// Package starprep provides domain types and state machines for a terminal
// client that builds and refines STAR behavioral interview stories.
package starprep

import (
	"context"
	"fmt"
	"io"
)

// Story is a user-authored or AI-generated behavioral interview story.
//
// A story persisted by the backend carries a server-assigned ID. A story
// that exists only on this client (generated but not yet saved, or saved
// unsuccessfully) has ID 0 and is keyed by LocalKey instead.
type Story struct {
	ID       int64  `json:"id,omitempty"`
	LocalKey string `json:"-"` // client-generated, stable across renders

	Title     string `json:"title" validate:"required"`
	Situation string `json:"situation" validate:"required"`
	Task      string `json:"task" validate:"required"`
	Action    string `json:"action" validate:"required"`
	Result    string `json:"result" validate:"required"`

	Theme             string   `json:"story_theme,omitempty"`
	CompanyContext    string   `json:"company_context,omitempty"`
	KeyThemes         []string `json:"key_themes,omitempty"`
	TalkingPoints     []string `json:"talking_points,omitempty"`
	ExperienceIndices []int    `json:"experience_indices,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	// Unsaved marks a story that was generated but could not be persisted.
	// It is rendered with a warning so the generated content is never
	// silently discarded.
	Unsaved bool `json:"-"`

	// Guidance is deterministic client-side coaching text attached at
	// generation time. Never sent to or received from the backend.
	Guidance *Guidance `json:"-"`
}

// Persisted reports whether the story has a server identity.
func (s Story) Persisted() bool {
	return s.ID != 0
}

// Key returns a stable list key: the server id when persisted, the
// client-generated local key otherwise.
func (s Story) Key() string {
	if s.Persisted() {
		return fmt.Sprintf("s%d", s.ID)
	}
	return s.LocalKey
}

// Patch returns the editable fields of the story for an update call.
func (s Story) Patch() StoryPatch {
	return StoryPatch{
		Title:          s.Title,
		Situation:      s.Situation,
		Task:           s.Task,
		Action:         s.Action,
		Result:         s.Result,
		Theme:          s.Theme,
		CompanyContext: s.CompanyContext,
		KeyThemes:      s.KeyThemes,
		TalkingPoints:  s.TalkingPoints,
	}
}

// StoryPatch carries only the fields a user can edit. Identity, timestamps
// and experience references are owned by the backend.
type StoryPatch struct {
	Title          string   `json:"title"`
	Situation      string   `json:"situation"`
	Task           string   `json:"task"`
	Action         string   `json:"action"`
	Result         string   `json:"result"`
	Theme          string   `json:"story_theme,omitempty"`
	CompanyContext string   `json:"company_context,omitempty"`
	KeyThemes      []string `json:"key_themes"`
	TalkingPoints  []string `json:"talking_points"`
}

// Experience is a resume entry (job/role) with descriptive bullets.
// Experiences are read-only here and referenced by position.
type Experience struct {
	Header   string   `json:"header,omitempty"`
	Title    string   `json:"title,omitempty"`
	Position string   `json:"position,omitempty"`
	Company  string   `json:"company,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// DisplayName returns the first non-empty of header, title, position.
func (e Experience) DisplayName() string {
	switch {
	case e.Header != "":
		return e.Header
	case e.Title != "":
		return e.Title
	default:
		return e.Position
	}
}

// Guidance sections.
const (
	SectionSituation = "situation"
	SectionTask      = "task"
	SectionAction    = "action"
	SectionResult    = "result"
)

// Guidance holds coaching prompts keyed by story section.
type Guidance struct {
	ProbingQuestions   map[string][]string `json:"probing_questions"`
	ChallengeQuestions map[string][]string `json:"challenge_questions"`
}

// GenerateRequest is the input for AI story generation.
type GenerateRequest struct {
	ExperienceIndices []int        `json:"experience_indices"`
	Experiences       []Experience `json:"experiences,omitempty"`
	Theme             string       `json:"theme"`
	Tone              string       `json:"tone"`
	CompanyContext    string       `json:"company_context,omitempty"`
}

// VariationsRequest asks for retellings of a story in other contexts/tones.
type VariationsRequest struct {
	StoryID  int64    `json:"id"`
	Contexts []string `json:"contexts"`
	Tones    []string `json:"tones"`
}

// Analysis scores a story and suggests concrete improvements.
type Analysis struct {
	OverallScore    int               `json:"overall_score"` // 0-100
	Strengths       []string          `json:"strengths"`
	Improvements    []string          `json:"improvements"`
	SectionFeedback map[string]string `json:"section_feedback"`
}

// Suggestions holds per-section rewrite prompts for a story.
type Suggestions struct {
	BySection map[string][]string `json:"suggestions"`
}

// Variation is one retelling of a story for a different context or tone.
type Variation struct {
	Context string `json:"context"`
	Tone    string `json:"tone"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Variations is the result of a variations request.
type Variations struct {
	Variations []Variation `json:"variations"`
}

// StoryService is the remote story collaborator. Implementations normalize
// transport and envelope failures into plain errors; they never panic past
// this boundary.
type StoryService interface {
	ListStories(ctx context.Context) ([]Story, error)
	CreateStory(ctx context.Context, story Story) (Story, error)
	UpdateStory(ctx context.Context, id int64, patch StoryPatch) (Story, error)
	DeleteStory(ctx context.Context, id int64) error
	AnalyzeStory(ctx context.Context, id int64) (*Analysis, error)
	StorySuggestions(ctx context.Context, id int64) (*Suggestions, error)
	StoryVariations(ctx context.Context, req VariationsRequest) (*Variations, error)
}

// ExperienceService lists the resume experiences stories are built from.
type ExperienceService interface {
	ListExperiences(ctx context.Context) ([]Experience, error)
}

// StoryGenerator produces a draft story from selected experiences. The
// backend implements this remotely; a direct Gemini implementation exists
// for running without a backend.
type StoryGenerator interface {
	GenerateStory(ctx context.Context, req GenerateRequest) (Story, error)
}

// ResumeUploader sends a resume document to the backend for parsing.
type ResumeUploader interface {
	UploadResume(ctx context.Context, file FileInfo, content io.Reader) error
}

// FlagStore persists boolean flags (e.g. "tour completed") between runs.
type FlagStore interface {
	// Flag returns the value and whether the flag has ever been set.
	Flag(key string) (value, ok bool)
	SetFlag(key string, value bool) error
	RemoveFlag(key string) error
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(content string) error
}

package starprep

import "context"

// Field identifies an editable story field.
type Field int

// Editable fields.
const (
	FieldTitle Field = iota
	FieldSituation
	FieldTask
	FieldAction
	FieldResult
	FieldTheme
	FieldCompanyContext
)

// FieldLabel returns the display label for a field.
func FieldLabel(f Field) string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldSituation:
		return "Situation"
	case FieldTask:
		return "Task"
	case FieldAction:
		return "Action"
	case FieldResult:
		return "Result"
	case FieldTheme:
		return "Theme"
	case FieldCompanyContext:
		return "Company Context"
	default:
		return ""
	}
}

// Editor manages a single inline edit session over a story list. At most
// one story is editable at a time; edits accumulate on a working copy and
// touch nothing else until a commit succeeds.
type Editor struct {
	active  bool
	key     string
	working Story
}

// NewEditor creates an Editor with no active session.
func NewEditor() *Editor {
	return &Editor{}
}

// Start opens an edit session on story with a copy of its fields. It is a
// no-op returning false when another session is already open.
func (e *Editor) Start(story Story) bool {
	if e.active {
		return false
	}
	e.active = true
	e.key = story.Key()
	e.working = story
	return true
}

// Editing reports whether a session is open.
func (e *Editor) Editing() bool {
	return e.active
}

// EditingKey returns the key of the story under edit, or "".
func (e *Editor) EditingKey() string {
	if !e.active {
		return ""
	}
	return e.key
}

// Working returns the current working copy.
func (e *Editor) Working() Story {
	return e.working
}

// SetField updates a field on the working copy. The underlying list is
// untouched until Commit succeeds.
func (e *Editor) SetField(f Field, value string) {
	if !e.active {
		return
	}
	switch f {
	case FieldTitle:
		e.working.Title = value
	case FieldSituation:
		e.working.Situation = value
	case FieldTask:
		e.working.Task = value
	case FieldAction:
		e.working.Action = value
	case FieldResult:
		e.working.Result = value
	case FieldTheme:
		e.working.Theme = value
	case FieldCompanyContext:
		e.working.CompanyContext = value
	}
}

// AddTheme admits input to the working copy's key themes, returning the
// input value that should remain in the entry control.
func (e *Editor) AddTheme(input string) (remaining string) {
	e.working.KeyThemes, remaining = AddEntry(e.working.KeyThemes, input)
	return remaining
}

// AddTalkingPoint admits input to the working copy's talking points,
// returning the input value that should remain in the entry control.
func (e *Editor) AddTalkingPoint(input string) (remaining string) {
	e.working.TalkingPoints, remaining = AddEntry(e.working.TalkingPoints, input)
	return remaining
}

// Commit validates the working copy and, for a persisted story, sends the
// editable fields to svc. On any failure the session stays open so the
// user can retry or cancel. On success (or for a local-only story, where
// no call is made) the session closes and the story to splice back into
// the list is returned.
func (e *Editor) Commit(ctx context.Context, svc StoryService) (Story, error) {
	if !e.active {
		return Story{}, nil
	}
	if err := ValidateStory(e.working); err != nil {
		return Story{}, err
	}

	committed := e.working
	if committed.Persisted() {
		updated, err := svc.UpdateStory(ctx, committed.ID, committed.Patch())
		if err != nil {
			return Story{}, err
		}
		if updated.ID != 0 {
			updated.LocalKey = committed.LocalKey
			updated.Unsaved = committed.Unsaved
			updated.Guidance = committed.Guidance
			committed = updated
		}
	}

	e.reset()
	return committed, nil
}

// Cancel discards the working copy and closes the session.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.active = false
	e.key = ""
	e.working = Story{}
}

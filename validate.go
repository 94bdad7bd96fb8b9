package starprep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Wizard preconditions, checked before any collaborator call is made.
var (
	ErrNoExperiences = errors.New("select at least one experience")
	ErrNoTheme       = errors.New("choose a story theme")
)

var storyValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists the required story fields that are still empty.
type ValidationError struct {
	Missing []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ValidateStory checks save-eligibility: title and all four STAR sections
// must be non-empty. No trimming is applied; a single character passes.
// Key themes and talking points are never required. Returns a
// *ValidationError naming the empty fields, or nil.
func ValidateStory(s Story) error {
	err := storyValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Missing = append(verr.Missing, strings.ToLower(fe.Field()))
	}
	return verr
}

// AddEntry admits a trimmed entry to a tag/talking-point list. Empty and
// all-whitespace entries are rejected: the list is unchanged and the
// input value is returned as-is so the user can keep typing. On success
// the trimmed entry is appended (duplicates allowed, order preserved) and
// the returned input is cleared.
func AddEntry(entries []string, input string) (updated []string, remaining string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return entries, input
	}
	return append(entries, trimmed), ""
}

// RemoveEntry deletes the entry at index, returning a new slice. Out of
// range indices leave the list unchanged.
func RemoveEntry(entries []string, index int) []string {
	if index < 0 || index >= len(entries) {
		return entries
	}
	updated := make([]string, 0, len(entries)-1)
	updated = append(updated, entries[:index]...)
	return append(updated, entries[index+1:]...)
}

package starprep

import "strings"

// FilterStories narrows stories by a free-text query and an optional theme
// tag, preserving the original relative order. The query is a
// case-insensitive substring match over title, theme, the four STAR
// sections and each key theme; the tag is an exact match against the
// story's theme or key theme membership. Both filters compose by AND. An
// empty (after trimming) query and an empty tag each mean "no filter".
//
// The function is side-effect free: the same inputs always produce the
// same result, and the input slice is never mutated.
func FilterStories(stories []Story, query, tag string) []Story {
	query = strings.TrimSpace(query)
	if query == "" && tag == "" {
		return stories
	}

	needle := strings.ToLower(query)
	filtered := make([]Story, 0, len(stories))
	for _, s := range stories {
		if needle != "" && !matchesQuery(s, needle) {
			continue
		}
		if tag != "" && !matchesTag(s, tag) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// matchesQuery reports whether any searchable field contains needle.
// needle must already be lowercased.
func matchesQuery(s Story, needle string) bool {
	fields := []string{s.Title, s.Theme, s.Situation, s.Task, s.Action, s.Result}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	for _, theme := range s.KeyThemes {
		if strings.Contains(strings.ToLower(theme), needle) {
			return true
		}
	}
	return false
}

// matchesTag reports an exact (case-sensitive) tag match, distinct from
// the case-insensitive text search.
func matchesTag(s Story, tag string) bool {
	if s.Theme == tag {
		return true
	}
	for _, theme := range s.KeyThemes {
		if theme == tag {
			return true
		}
	}
	return false
}

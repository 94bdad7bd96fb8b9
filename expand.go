package starprep

// ExpandMode controls how an Expander treats concurrently expanded keys.
type ExpandMode int

// Expand modes.
const (
	// ExpandIndependent allows an arbitrary subset of keys to be expanded
	// at once. Used for story lists.
	ExpandIndependent ExpandMode = iota
	// ExpandExclusive keeps at most one key expanded: expanding a new key
	// collapses all others. Used for the four-section STAR builder.
	ExpandExclusive
)

// Expander tracks which items in a list are currently expanded. State is
// transient: a fresh Expander starts fully collapsed apart from any seeded
// keys, and nothing is persisted across screens.
type Expander struct {
	mode ExpandMode
	open map[string]bool
}

// NewExpander creates an Expander. Seed keys start expanded; in exclusive
// mode only the last seed survives.
func NewExpander(mode ExpandMode, seed ...string) *Expander {
	e := &Expander{mode: mode, open: make(map[string]bool)}
	for _, key := range seed {
		e.Expand(key)
	}
	return e
}

// Toggle flips the expanded state of key. In exclusive mode expanding a
// key collapses every other key first.
func (e *Expander) Toggle(key string) {
	if e.open[key] {
		delete(e.open, key)
		return
	}
	e.Expand(key)
}

// Expand marks key as expanded, honoring the exclusivity mode.
func (e *Expander) Expand(key string) {
	if e.mode == ExpandExclusive {
		clear(e.open)
	}
	e.open[key] = true
}

// Collapse marks key as collapsed.
func (e *Expander) Collapse(key string) {
	delete(e.open, key)
}

// CollapseAll collapses every key.
func (e *Expander) CollapseAll() {
	clear(e.open)
}

// Expanded reports whether key is currently expanded.
func (e *Expander) Expanded(key string) bool {
	return e.open[key]
}

// Count returns the number of expanded keys.
func (e *Expander) Count() int {
	return len(e.open)
}

package starprep

// Action identifies a kind of asynchronous per-story operation.
type Action string

// Action kinds tracked against a single pending slot each.
const (
	ActionAnalyzing  Action = "analyzing"
	ActionSuggesting Action = "suggesting"
	ActionVariations Action = "variations"
	ActionDeleting   Action = "deleting"
	ActionUpdating   Action = "updating"
)

// Tracker records at most one pending item key per action kind. Its only
// job is to stop a control from being submitted twice before its first
// request resolves; different kinds may be in flight for the same item
// simultaneously.
type Tracker struct {
	pending map[Action]string
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{pending: make(map[Action]string)}
}

// Begin records key as pending for kind. It returns false without
// recording anything when kind already has a pending item, even when
// that item is a different key: same-kind requests for other items are
// deferred until the slot clears.
func (t *Tracker) Begin(kind Action, key string) bool {
	if _, busy := t.pending[kind]; busy {
		return false
	}
	t.pending[kind] = key
	return true
}

// End clears the pending item for kind. Success and failure both
// terminate the pending state.
func (t *Tracker) End(kind Action) {
	delete(t.pending, kind)
}

// Pending reports whether key is the pending item for kind.
func (t *Tracker) Pending(kind Action, key string) bool {
	return t.pending[kind] == key
}

// Busy reports whether kind has any pending item.
func (t *Tracker) Busy(kind Action) bool {
	_, busy := t.pending[kind]
	return busy
}

// AnyPending reports whether key has a pending operation of any kind.
func (t *Tracker) AnyPending(key string) bool {
	for _, pending := range t.pending {
		if pending == key {
			return true
		}
	}
	return false
}

package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/starprep"
)

// StoriesMode identifies the current interaction mode of the story list.
type StoriesMode int

// Story list modes.
const (
	StoriesModeBrowse StoriesMode = iota
	StoriesModeFilter
	StoriesModeEdit
	StoriesModeConfirmDelete
)

// Messages produced by the story list's asynchronous commands.
type (
	storiesLoadedMsg struct {
		stories []starprep.Story
		err     error
	}
	storyDeletedMsg struct {
		key string
		err error
	}
	storyUpdatedMsg struct {
		key   string
		story starprep.Story
		err   error
	}
	storyAnalyzedMsg struct {
		key      string
		analysis *starprep.Analysis
		err      error
	}
	suggestionsMsg struct {
		key         string
		suggestions *starprep.Suggestions
		err         error
	}
	variationsMsg struct {
		key        string
		variations *starprep.Variations
		err        error
	}
)

// editFields is the order fields are cycled through in edit mode.
var editFields = []starprep.Field{
	starprep.FieldTitle,
	starprep.FieldSituation,
	starprep.FieldTask,
	starprep.FieldAction,
	starprep.FieldResult,
	starprep.FieldTheme,
	starprep.FieldCompanyContext,
}

// StoriesModel is the Bubble Tea model for the story list screen: browse,
// filter, expand, edit, delete, and run AI actions on stories.
type StoriesModel struct {
	svc  starprep.StoryService
	clip starprep.Clipboard

	stories []starprep.Story
	loading bool

	expander *starprep.Expander
	// sections focuses at most one STAR section of a story at a time.
	sections *starprep.Expander
	editor   *starprep.Editor
	tracker  *starprep.Tracker

	// AI action results, keyed by story key.
	analyses    map[string]*starprep.Analysis
	suggestions map[string]*starprep.Suggestions
	variations  map[string]*starprep.Variations

	filterInput textinput.Model
	filterTag   string

	editInput textarea.Model
	editIndex int

	confirmKey string

	mode     StoriesMode
	cursor   int
	errText  string
	warnText string
	infoText string

	spin     spinner.Model
	viewport viewport.Model
	keymap   StoriesKeyMap
	styles   starprep.Styles
	renderer *lipgloss.Renderer
	width    int
	height   int
	ready    bool
}

// StoriesOption configures a StoriesModel.
type StoriesOption func(*storiesConfig)

type storiesConfig struct {
	renderer *lipgloss.Renderer
	theme    starprep.Theme
	clip     starprep.Clipboard
	stories  []starprep.Story
	loaded   bool
}

// WithStoriesRenderer sets a custom lipgloss renderer for the model.
func WithStoriesRenderer(r *lipgloss.Renderer) StoriesOption {
	return func(cfg *storiesConfig) {
		cfg.renderer = r
	}
}

// WithStoriesTheme sets the theme for the model.
func WithStoriesTheme(t starprep.Theme) StoriesOption {
	return func(cfg *storiesConfig) {
		cfg.theme = t
	}
}

// WithClipboard enables copy-to-clipboard export of stories.
func WithClipboard(c starprep.Clipboard) StoriesOption {
	return func(cfg *storiesConfig) {
		cfg.clip = c
	}
}

// WithInitialStories seeds the list so the first render doesn't wait on
// the service (the caller prefetched).
func WithInitialStories(stories []starprep.Story) StoriesOption {
	return func(cfg *storiesConfig) {
		cfg.stories = stories
		cfg.loaded = true
	}
}

// NewStoriesModel creates a story list over svc.
func NewStoriesModel(svc starprep.StoryService, opts ...StoriesOption) StoriesModel {
	cfg := &storiesConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	filter := textinput.New()
	filter.Placeholder = "search stories"
	filter.CharLimit = 120

	edit := textarea.New()
	edit.CharLimit = 0
	edit.SetHeight(5)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return StoriesModel{
		svc:         svc,
		clip:        cfg.clip,
		stories:     cfg.stories,
		loading:     !cfg.loaded,
		expander:    starprep.NewExpander(starprep.ExpandIndependent),
		sections:    starprep.NewExpander(starprep.ExpandExclusive),
		editor:      starprep.NewEditor(),
		tracker:     starprep.NewTracker(),
		analyses:    make(map[string]*starprep.Analysis),
		suggestions: make(map[string]*starprep.Suggestions),
		variations:  make(map[string]*starprep.Variations),
		filterInput: filter,
		editInput:   edit,
		spin:        spin,
		keymap:      DefaultStoriesKeyMap(),
		styles:      styles,
		renderer:    cfg.renderer,
	}
}

// Init implements tea.Model.
func (m StoriesModel) Init() tea.Cmd {
	if m.loading {
		return m.loadCmd()
	}
	return nil
}

// Browsing reports whether the list is in plain browse mode, i.e. global
// navigation keys may be interpreted by the surrounding app.
func (m StoriesModel) Browsing() bool {
	return m.mode == StoriesModeBrowse
}

// Stories returns the full (unfiltered) story list.
func (m StoriesModel) Stories() []starprep.Story {
	return m.stories
}

// MergeStory splices a story into the list: replaced in place when its
// key is already present, prepended otherwise. A new list is built so
// the change is visible to value comparisons.
func (m *StoriesModel) MergeStory(story starprep.Story) {
	for i, existing := range m.stories {
		if existing.Key() == story.Key() {
			updated := make([]starprep.Story, len(m.stories))
			copy(updated, m.stories)
			updated[i] = story
			m.stories = updated
			m.refresh()
			return
		}
	}
	m.stories = append([]starprep.Story{story}, m.stories...)
	m.refresh()
}

// SetNotice shows a transient informational or warning message.
func (m *StoriesModel) SetNotice(info, warning string) {
	m.infoText = info
	m.warnText = warning
	m.refresh()
}

// Reload refetches the story list from the service. Called whenever the
// screen regains focus: there is no client-side cache.
func (m *StoriesModel) Reload() tea.Cmd {
	m.loading = true
	m.refresh()
	return tea.Batch(m.loadCmd(), m.spin.Tick)
}

// Update implements tea.Model.
func (m StoriesModel) Update(msg tea.Msg) (StoriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case StoriesModeFilter:
			return m.handleFilterKeys(msg)
		case StoriesModeEdit:
			return m.handleEditKeys(msg)
		case StoriesModeConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case storiesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
			// Local-only drafts live nowhere else; a refetch must not
			// discard them.
			var drafts []starprep.Story
			for _, s := range m.stories {
				if !s.Persisted() {
					drafts = append(drafts, s)
				}
			}
			m.stories = append(drafts, msg.stories...)
			m.clampCursor()
		}
		m.refresh()
		return m, nil

	case storyDeletedMsg:
		m.tracker.End(starprep.ActionDeleting)
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.removeStory(msg.key)
			m.infoText = "story deleted"
		}
		m.refresh()
		return m, nil

	case storyUpdatedMsg:
		m.tracker.End(starprep.ActionUpdating)
		if msg.err != nil {
			// The edit session stays open so the user can retry or cancel.
			m.errText = msg.err.Error()
		} else {
			m.editor.Cancel()
			m.mode = StoriesModeBrowse
			m.errText = ""
			m.infoText = "story saved"
			m.MergeStory(msg.story)
		}
		m.refresh()
		return m, nil

	case storyAnalyzedMsg:
		m.tracker.End(starprep.ActionAnalyzing)
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else if m.hasStory(msg.key) {
			m.analyses[msg.key] = msg.analysis
			m.expander.Expand(msg.key)
		}
		m.refresh()
		return m, nil

	case suggestionsMsg:
		m.tracker.End(starprep.ActionSuggesting)
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else if m.hasStory(msg.key) {
			m.suggestions[msg.key] = msg.suggestions
			m.expander.Expand(msg.key)
		}
		m.refresh()
		return m, nil

	case variationsMsg:
		m.tracker.End(starprep.ActionVariations)
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else if m.hasStory(msg.key) {
			m.variations[msg.key] = msg.variations
			m.expander.Expand(msg.key)
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.busy() {
			m.refresh()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m StoriesModel) handleBrowseKeys(msg tea.KeyMsg) (StoriesModel, tea.Cmd) {
	visible := m.visible()

	switch {
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		m.refresh()

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refresh()

	case key.Matches(msg, m.keymap.Toggle):
		if s, ok := m.current(); ok {
			m.expander.Toggle(s.Key())
			m.refresh()
		}

	case key.Matches(msg, m.keymap.Section):
		if s, ok := m.current(); ok {
			names := []string{
				starprep.SectionSituation,
				starprep.SectionTask,
				starprep.SectionAction,
				starprep.SectionResult,
			}
			i := int(msg.String()[0] - '1')
			if i >= 0 && i < len(names) {
				m.expander.Expand(s.Key())
				m.sections.Toggle(s.Key() + ":" + names[i])
				m.refresh()
			}
		}

	case key.Matches(msg, m.keymap.Filter):
		m.mode = StoriesModeFilter
		m.filterInput.Focus()
		m.refresh()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.CycleTag):
		m.filterTag = nextTag(m.filterTag)
		m.clampCursor()
		m.refresh()

	case key.Matches(msg, m.keymap.Reload):
		cmd := m.Reload()
		return m, cmd

	case key.Matches(msg, m.keymap.Edit):
		if s, ok := m.current(); ok {
			if m.editor.Start(s) {
				m.mode = StoriesModeEdit
				m.editIndex = 0
				m.loadEditField()
				m.expander.Expand(s.Key())
				m.refresh()
				return m, textarea.Blink
			}
		}

	case key.Matches(msg, m.keymap.Delete):
		if s, ok := m.current(); ok {
			if m.tracker.Busy(starprep.ActionDeleting) {
				return m, nil
			}
			m.mode = StoriesModeConfirmDelete
			m.confirmKey = s.Key()
			m.refresh()
		}

	case key.Matches(msg, m.keymap.Analyze):
		return m.beginAIAction(starprep.ActionAnalyzing)

	case key.Matches(msg, m.keymap.Suggest):
		return m.beginAIAction(starprep.ActionSuggesting)

	case key.Matches(msg, m.keymap.Variations):
		return m.beginAIAction(starprep.ActionVariations)

	case key.Matches(msg, m.keymap.CopyStory):
		if s, ok := m.current(); ok && m.clip != nil {
			if err := m.clip.Copy(starprep.FormatStory(s)); err != nil {
				m.errText = err.Error()
			} else {
				m.infoText = "story copied to clipboard"
			}
			m.refresh()
		}
	}

	return m, nil
}

// beginAIAction starts an analyze/suggest/variations request for the
// story under the cursor. The tracker's per-kind pending slot stops the
// same control being submitted again before its request resolves.
func (m StoriesModel) beginAIAction(kind starprep.Action) (StoriesModel, tea.Cmd) {
	s, ok := m.current()
	if !ok || !s.Persisted() {
		return m, nil
	}
	if !m.tracker.Begin(kind, s.Key()) {
		return m, nil
	}

	m.errText = ""
	m.refresh()

	svc := m.svc
	keyStr := s.Key()
	id := s.ID
	var cmd tea.Cmd
	switch kind {
	case starprep.ActionAnalyzing:
		cmd = func() tea.Msg {
			analysis, err := svc.AnalyzeStory(context.Background(), id)
			return storyAnalyzedMsg{key: keyStr, analysis: analysis, err: err}
		}
	case starprep.ActionSuggesting:
		cmd = func() tea.Msg {
			suggestions, err := svc.StorySuggestions(context.Background(), id)
			return suggestionsMsg{key: keyStr, suggestions: suggestions, err: err}
		}
	case starprep.ActionVariations:
		cmd = func() tea.Msg {
			variations, err := svc.StoryVariations(context.Background(), starprep.VariationsRequest{
				StoryID:  id,
				Contexts: []string{"technical interview", "executive interview"},
				Tones:    starprep.Tones[:2],
			})
			return variationsMsg{key: keyStr, variations: variations, err: err}
		}
	}
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m StoriesModel) handleFilterKeys(msg tea.KeyMsg) (StoriesModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = StoriesModeBrowse
		m.filterInput.Blur()
		m.clampCursor()
		m.refresh()
		return m, nil
	case "esc":
		m.mode = StoriesModeBrowse
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.clampCursor()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.clampCursor()
	m.refresh()
	return m, cmd
}

func (m StoriesModel) handleEditKeys(msg tea.KeyMsg) (StoriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.editor.Cancel()
		m.mode = StoriesModeBrowse
		m.errText = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		m.stashEditField()
		m.editIndex = (m.editIndex + 1) % len(editFields)
		m.loadEditField()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.PrevField):
		m.stashEditField()
		m.editIndex = (m.editIndex + len(editFields) - 1) % len(editFields)
		m.loadEditField()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Commit):
		return m.commitEdit()
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// commitEdit validates the working copy and either applies it directly
// (local-only story, no collaborator involved) or sends the editable
// fields to the service. Validation failures block before any call.
func (m StoriesModel) commitEdit() (StoriesModel, tea.Cmd) {
	m.stashEditField()
	working := m.editor.Working()

	if err := starprep.ValidateStory(working); err != nil {
		m.errText = err.Error()
		m.refresh()
		return m, nil
	}

	if !working.Persisted() {
		committed, err := m.editor.Commit(context.Background(), m.svc)
		if err != nil {
			m.errText = err.Error()
			m.refresh()
			return m, nil
		}
		m.mode = StoriesModeBrowse
		m.errText = ""
		m.infoText = "draft updated locally"
		m.MergeStory(committed)
		return m, nil
	}

	if !m.tracker.Begin(starprep.ActionUpdating, working.Key()) {
		return m, nil
	}
	m.errText = ""
	m.refresh()

	svc := m.svc
	keyStr := working.Key()
	cmd := func() tea.Msg {
		updated, err := svc.UpdateStory(context.Background(), working.ID, working.Patch())
		if err != nil {
			return storyUpdatedMsg{key: keyStr, err: err}
		}
		if updated.ID == 0 {
			// Some service versions return no body on update.
			updated = working
		}
		updated.LocalKey = working.LocalKey
		updated.Guidance = working.Guidance
		return storyUpdatedMsg{key: keyStr, story: updated}
	}
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m StoriesModel) handleConfirmKeys(msg tea.KeyMsg) (StoriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		keyStr := m.confirmKey
		m.mode = StoriesModeBrowse
		m.confirmKey = ""

		story, ok := m.storyByKey(keyStr)
		if !ok {
			return m, nil
		}
		if !story.Persisted() {
			// Local drafts are removed without a collaborator call.
			m.removeStory(keyStr)
			m.refresh()
			return m, nil
		}
		if !m.tracker.Begin(starprep.ActionDeleting, keyStr) {
			return m, nil
		}
		m.refresh()

		svc := m.svc
		id := story.ID
		cmd := func() tea.Msg {
			err := svc.DeleteStory(context.Background(), id)
			return storyDeletedMsg{key: keyStr, err: err}
		}
		return m, tea.Batch(cmd, m.spin.Tick)

	case key.Matches(msg, m.keymap.Deny):
		m.mode = StoriesModeBrowse
		m.confirmKey = ""
		m.refresh()
	}
	return m, nil
}

func (m *StoriesModel) handleWindowSize(msg tea.WindowSizeMsg) StoriesModel {
	statusBarHeight := 1
	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - statusBarHeight
	}
	m.refresh()
	return *m
}

// View implements tea.Model.
func (m StoriesModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

func (m StoriesModel) loadCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		stories, err := svc.ListStories(context.Background())
		return storiesLoadedMsg{stories: stories, err: err}
	}
}

// visible derives the rendered subset from the full list and the two
// filters. Never renders a story the current filter excludes.
func (m StoriesModel) visible() []starprep.Story {
	return starprep.FilterStories(m.stories, m.filterInput.Value(), m.filterTag)
}

func (m StoriesModel) current() (starprep.Story, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return starprep.Story{}, false
	}
	return visible[m.cursor], true
}

func (m StoriesModel) hasStory(key string) bool {
	_, ok := m.storyByKey(key)
	return ok
}

func (m StoriesModel) storyByKey(key string) (starprep.Story, bool) {
	for _, s := range m.stories {
		if s.Key() == key {
			return s, true
		}
	}
	return starprep.Story{}, false
}

func (m *StoriesModel) removeStory(key string) {
	updated := make([]starprep.Story, 0, len(m.stories))
	for _, s := range m.stories {
		if s.Key() != key {
			updated = append(updated, s)
		}
	}
	m.stories = updated
	m.expander.Collapse(key)
	delete(m.analyses, key)
	delete(m.suggestions, key)
	delete(m.variations, key)
	m.clampCursor()
}

func (m *StoriesModel) clampCursor() {
	visible := m.visible()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m StoriesModel) busy() bool {
	for _, kind := range []starprep.Action{
		starprep.ActionAnalyzing,
		starprep.ActionSuggesting,
		starprep.ActionVariations,
		starprep.ActionDeleting,
		starprep.ActionUpdating,
	} {
		if m.tracker.Busy(kind) {
			return true
		}
	}
	return m.loading
}

func (m *StoriesModel) stashEditField() {
	m.editor.SetField(editFields[m.editIndex], m.editInput.Value())
}

func (m *StoriesModel) loadEditField() {
	working := m.editor.Working()
	var value string
	switch editFields[m.editIndex] {
	case starprep.FieldTitle:
		value = working.Title
	case starprep.FieldSituation:
		value = working.Situation
	case starprep.FieldTask:
		value = working.Task
	case starprep.FieldAction:
		value = working.Action
	case starprep.FieldResult:
		value = working.Result
	case starprep.FieldTheme:
		value = working.Theme
	case starprep.FieldCompanyContext:
		value = working.CompanyContext
	}
	m.editInput.SetValue(value)
	m.editInput.Focus()
}

// refresh re-renders the viewport content after a state change.
func (m *StoriesModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m StoriesModel) renderContent() string {
	var b strings.Builder

	header := styleFor(m.renderer, m.styles.Title).Bold(true)
	muted := styleFor(m.renderer, m.styles.Muted)

	visible := m.visible()
	fmt.Fprintf(&b, "%s %s\n", header.Render("STAR Stories"),
		muted.Render(fmt.Sprintf("(%d/%d)", len(visible), len(m.stories))))

	if m.mode == StoriesModeFilter || m.filterInput.Value() != "" {
		fmt.Fprintf(&b, "filter: %s\n", m.filterInput.View())
	}
	if m.filterTag != "" {
		fmt.Fprintf(&b, "tag: %s\n", styleFor(m.renderer, m.styles.Badge).Render(" "+m.filterTag+" "))
	}
	m.renderNotices(&b)
	b.WriteString("\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s loading stories...\n", m.spin.View())
	case len(visible) == 0 && len(m.stories) == 0:
		b.WriteString(muted.Render("No stories yet. Press g to generate your first story from your resume.") + "\n")
	case len(visible) == 0:
		b.WriteString(muted.Render("No stories match the current filter.") + "\n")
	default:
		for i, s := range visible {
			m.renderStory(&b, s, i == m.cursor)
		}
	}

	return b.String()
}

func (m StoriesModel) renderNotices(b *strings.Builder) {
	if m.errText != "" {
		fmt.Fprintf(b, "%s\n", styleFor(m.renderer, m.styles.Error).Render("✗ "+m.errText))
	}
	if m.warnText != "" {
		fmt.Fprintf(b, "%s\n", styleFor(m.renderer, m.styles.Warning).Render("! "+m.warnText))
	}
	if m.infoText != "" {
		fmt.Fprintf(b, "%s\n", styleFor(m.renderer, m.styles.Success).Render("✓ "+m.infoText))
	}
}

func (m StoriesModel) renderStory(b *strings.Builder, s starprep.Story, selected bool) {
	keyStr := s.Key()
	expanded := m.expander.Expanded(keyStr)

	marker := "▸"
	if expanded {
		marker = "▾"
	}

	line := fmt.Sprintf("%s %s", marker, s.Title)
	if s.Theme != "" {
		line += " " + styleFor(m.renderer, m.styles.Badge).Render(" "+s.Theme+" ")
	}
	if s.Unsaved {
		line += " " + styleFor(m.renderer, m.styles.Warning).Render("(not saved)")
	}
	if m.tracker.AnyPending(keyStr) {
		line += " " + m.spin.View()
	}

	if selected {
		prefix := "> "
		if m.mode == StoriesModeConfirmDelete && m.confirmKey == keyStr {
			prefix = "d "
		}
		line = styleFor(m.renderer, m.styles.Selected).Render(prefix + line)
	} else {
		line = "  " + line
	}
	b.WriteString(line + "\n")

	if m.mode == StoriesModeConfirmDelete && m.confirmKey == keyStr {
		fmt.Fprintf(b, "    %s\n",
			styleFor(m.renderer, m.styles.Error).Render(fmt.Sprintf("delete %q? y/n", truncate(s.Title, 40))))
	}

	if m.mode == StoriesModeEdit && m.editor.EditingKey() == keyStr {
		m.renderEditForm(b)
		return
	}

	if expanded {
		m.renderDetail(b, s)
	}
}

func (m StoriesModel) renderDetail(b *strings.Builder, s starprep.Story) {
	section := styleFor(m.renderer, m.styles.SectionHeader)
	muted := styleFor(m.renderer, m.styles.Muted)
	keyStr := s.Key()

	sections := []struct {
		label, text, name string
	}{
		{"Situation", s.Situation, starprep.SectionSituation},
		{"Task", s.Task, starprep.SectionTask},
		{"Action", s.Action, starprep.SectionAction},
		{"Result", s.Result, starprep.SectionResult},
	}

	// With a section focused, the others collapse to their labels. The
	// section expander is exclusive, so at most one is ever focused.
	focused := ""
	for _, sec := range sections {
		if m.sections.Expanded(keyStr + ":" + sec.name) {
			focused = sec.name
		}
	}

	for _, sec := range sections {
		if focused != "" && sec.name != focused {
			fmt.Fprintf(b, "    %s %s\n", section.Render(sec.label), muted.Render(truncate(sec.text, 50)))
			continue
		}
		fmt.Fprintf(b, "    %s\n    %s\n", section.Render(sec.label), sec.text)
		if s.Guidance == nil {
			continue
		}
		for _, q := range s.Guidance.ProbingQuestions[sec.name] {
			fmt.Fprintf(b, "      %s\n", muted.Render("· "+q))
		}
		if sec.name == focused {
			for _, q := range s.Guidance.ChallengeQuestions[sec.name] {
				fmt.Fprintf(b, "      %s\n", muted.Render("? "+q))
			}
		}
	}

	if len(s.KeyThemes) > 0 {
		fmt.Fprintf(b, "    %s %s\n", section.Render("Key themes:"), strings.Join(s.KeyThemes, ", "))
	}
	if len(s.TalkingPoints) > 0 {
		fmt.Fprintf(b, "    %s\n", section.Render("Talking points:"))
		for _, p := range s.TalkingPoints {
			fmt.Fprintf(b, "      - %s\n", p)
		}
	}

	if analysis := m.analyses[keyStr]; analysis != nil {
		fmt.Fprintf(b, "    %s %d/100\n", section.Render("Analysis:"), analysis.OverallScore)
		for _, strength := range analysis.Strengths {
			fmt.Fprintf(b, "      + %s\n", strength)
		}
		for _, improvement := range analysis.Improvements {
			fmt.Fprintf(b, "      - %s\n", improvement)
		}
	}
	if suggestions := m.suggestions[keyStr]; suggestions != nil {
		fmt.Fprintf(b, "    %s\n", section.Render("Suggestions:"))
		for _, sectionName := range []string{starprep.SectionSituation, starprep.SectionTask, starprep.SectionAction, starprep.SectionResult} {
			for _, suggestion := range suggestions.BySection[sectionName] {
				fmt.Fprintf(b, "      %s: %s\n", sectionName, suggestion)
			}
		}
	}
	if variations := m.variations[keyStr]; variations != nil {
		fmt.Fprintf(b, "    %s\n", section.Render("Variations:"))
		for _, v := range variations.Variations {
			fmt.Fprintf(b, "      [%s/%s] %s\n", v.Context, v.Tone, v.Title)
		}
	}

	if s.CreatedAt != "" {
		fmt.Fprintf(b, "    %s\n", muted.Render("created "+s.CreatedAt))
	}
	b.WriteString("\n")
}

func (m StoriesModel) renderEditForm(b *strings.Builder) {
	section := styleFor(m.renderer, m.styles.SectionHeader)
	muted := styleFor(m.renderer, m.styles.Muted)
	working := m.editor.Working()

	values := map[starprep.Field]string{
		starprep.FieldTitle:          working.Title,
		starprep.FieldSituation:      working.Situation,
		starprep.FieldTask:           working.Task,
		starprep.FieldAction:         working.Action,
		starprep.FieldResult:         working.Result,
		starprep.FieldTheme:          working.Theme,
		starprep.FieldCompanyContext: working.CompanyContext,
	}

	for i, field := range editFields {
		label := starprep.FieldLabel(field)
		if i == m.editIndex {
			fmt.Fprintf(b, "    %s\n%s\n", section.Render("* "+label), m.editInput.View())
			continue
		}
		fmt.Fprintf(b, "    %s %s\n", section.Render(label+":"), muted.Render(truncate(values[field], 60)))
	}
	if m.tracker.Busy(starprep.ActionUpdating) {
		fmt.Fprintf(b, "    %s saving...\n", m.spin.View())
	}
	b.WriteString("\n")
}

func (m StoriesModel) statusBarView() string {
	barStyle := styleFor(m.renderer, m.styles.StatusBar)

	var hints string
	switch m.mode {
	case StoriesModeFilter:
		hints = "enter:apply  esc:clear"
	case StoriesModeEdit:
		hints = "tab:next field  ctrl+s:save  esc:cancel"
	case StoriesModeConfirmDelete:
		hints = "y:delete  n:keep"
	default:
		hints = "j/k:move  enter:expand  /:filter  t:tag  e:edit  d:delete  a:analyze  s:suggest  v:variations  c:copy  g:new  u:upload  q:quit"
	}

	content := barStyle.Render(" " + hints + " ")
	if w := lipgloss.Width(content); m.width > w {
		content += barStyle.Render(strings.Repeat(" ", m.width-w))
	}
	return content
}

// nextTag cycles the tag filter through the known themes and back to off.
func nextTag(current string) string {
	if current == "" {
		return starprep.StoryThemes[0]
	}
	for i, theme := range starprep.StoryThemes {
		if theme == current {
			if i == len(starprep.StoryThemes)-1 {
				return ""
			}
			return starprep.StoryThemes[i+1]
		}
	}
	return ""
}

package bubbletea

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fwojciec/starprep"
)

// Screen identifies the active top-level screen.
type Screen int

// Application screens.
const (
	ScreenTour Screen = iota
	ScreenStories
	ScreenWizard
	ScreenUpload
)

// experiencesLoadedMsg carries a refreshed experience list.
type experiencesLoadedMsg struct {
	experiences []starprep.Experience
	err         error
}

// AppKeyMap defines the application-level key bindings.
type AppKeyMap struct {
	NewStory key.Binding
	Upload   key.Binding
	Tour     key.Binding
	Quit     key.Binding
}

// DefaultAppKeyMap returns the default application-level key bindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		NewStory: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate story"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload resume"),
		),
		Tour: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "replay tour"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// AppModel is the root Bubble Tea model. It routes between the story list,
// the generation wizard, the resume upload picker, and the first-run tour,
// and owns the data shared between them.
type AppModel struct {
	svc      starprep.StoryService
	expSvc   starprep.ExperienceService
	gen      starprep.StoryGenerator
	uploader starprep.ResumeUploader
	flags    starprep.FlagStore
	clip     starprep.Clipboard
	log      zerolog.Logger

	screen      Screen
	experiences []starprep.Experience

	stories StoriesModel
	wizard  WizardModel
	upload  UploadModel
	tour    TourModel

	keymap   AppKeyMap
	theme    starprep.Theme
	renderer *lipgloss.Renderer
	lastSize tea.WindowSizeMsg
	sized    bool
}

// AppOption configures an AppModel.
type AppOption func(*appConfig)

type appConfig struct {
	renderer    *lipgloss.Renderer
	theme       starprep.Theme
	flags       starprep.FlagStore
	clip        starprep.Clipboard
	uploader    starprep.ResumeUploader
	log         zerolog.Logger
	stories     []starprep.Story
	experiences []starprep.Experience
	prefetched  bool
}

// WithAppRenderer sets a custom lipgloss renderer for all screens.
func WithAppRenderer(r *lipgloss.Renderer) AppOption {
	return func(cfg *appConfig) {
		cfg.renderer = r
	}
}

// WithAppTheme sets the theme for all screens.
func WithAppTheme(t starprep.Theme) AppOption {
	return func(cfg *appConfig) {
		cfg.theme = t
	}
}

// WithFlags enables persisted flags, which gate the first-run tour.
func WithFlags(flags starprep.FlagStore) AppOption {
	return func(cfg *appConfig) {
		cfg.flags = flags
	}
}

// WithAppClipboard enables copy-to-clipboard export of stories.
func WithAppClipboard(c starprep.Clipboard) AppOption {
	return func(cfg *appConfig) {
		cfg.clip = c
	}
}

// WithUploader enables the resume upload screen.
func WithUploader(u starprep.ResumeUploader) AppOption {
	return func(cfg *appConfig) {
		cfg.uploader = u
	}
}

// WithAppLogger sets the logger. Defaults to a no-op logger.
func WithAppLogger(log zerolog.Logger) AppOption {
	return func(cfg *appConfig) {
		cfg.log = log
	}
}

// WithPrefetched seeds the app with data loaded before the program
// started, so the first frame renders without a spinner.
func WithPrefetched(stories []starprep.Story, experiences []starprep.Experience) AppOption {
	return func(cfg *appConfig) {
		cfg.stories = stories
		cfg.experiences = experiences
		cfg.prefetched = true
	}
}

// NewAppModel creates the root model over the given collaborators.
func NewAppModel(svc starprep.StoryService, expSvc starprep.ExperienceService, gen starprep.StoryGenerator, opts ...AppOption) AppModel {
	cfg := &appConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	storiesOpts := []StoriesOption{
		WithStoriesRenderer(cfg.renderer),
		WithStoriesTheme(cfg.theme),
	}
	if cfg.clip != nil {
		storiesOpts = append(storiesOpts, WithClipboard(cfg.clip))
	}
	if cfg.prefetched {
		storiesOpts = append(storiesOpts, WithInitialStories(cfg.stories))
	}

	screen := ScreenStories
	if !TourCompleted(cfg.flags) {
		screen = ScreenTour
	}

	return AppModel{
		svc:         svc,
		expSvc:      expSvc,
		gen:         gen,
		uploader:    cfg.uploader,
		flags:       cfg.flags,
		clip:        cfg.clip,
		log:         cfg.log,
		screen:      screen,
		experiences: cfg.experiences,
		stories:     NewStoriesModel(svc, storiesOpts...),
		tour:        NewTourModel(cfg.flags, WithTourRenderer(cfg.renderer), WithTourTheme(cfg.theme)),
		keymap:      DefaultAppKeyMap(),
		theme:       cfg.theme,
		renderer:    cfg.renderer,
	}
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.stories.Init()}
	if m.experiences == nil && m.expSvc != nil {
		cmds = append(cmds, m.loadExperiencesCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.lastSize = msg
		m.sized = true
		// Every screen tracks the size so switches render correctly.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.stories, cmd = m.stories.Update(msg)
		cmds = append(cmds, cmd)
		m.tour, cmd = m.tour.Update(msg)
		cmds = append(cmds, cmd)
		if m.screen == ScreenWizard {
			m.wizard, cmd = m.wizard.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.screen == ScreenUpload {
			m.upload, cmd = m.upload.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if km, cmd, handled := m.handleAppKeys(msg); handled {
			return km, cmd
		}

	case experiencesLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("failed to load experiences")
		} else {
			m.experiences = msg.experiences
		}
		return m, nil

	case TourDoneMsg:
		m.screen = ScreenStories
		return m, m.resize()

	case WizardDoneMsg:
		m.screen = ScreenStories
		m.stories.MergeStory(msg.Story)
		if msg.Warning != "" {
			m.stories.SetNotice("", msg.Warning)
		} else {
			m.stories.SetNotice("story generated and saved", "")
		}
		return m, m.resize()

	case WizardCancelledMsg:
		m.screen = ScreenStories
		// The list is not cached; regaining focus refetches it.
		reload := m.stories.Reload()
		return m, tea.Batch(m.resize(), reload)

	case UploadDoneMsg:
		m.screen = ScreenStories
		m.stories.SetNotice("uploaded "+msg.Name, "")
		// A new resume changes the experiences the wizard offers.
		return m, tea.Batch(m.resize(), m.loadExperiencesCmd())

	case UploadCancelledMsg:
		m.screen = ScreenStories
		reload := m.stories.Reload()
		return m, tea.Batch(m.resize(), reload)
	}

	return m.routeMsg(msg)
}

// handleAppKeys interprets application-level keys. It only claims a key
// when the active screen isn't using it for something else.
func (m AppModel) handleAppKeys(msg tea.KeyMsg) (AppModel, tea.Cmd, bool) {
	if m.screen != ScreenStories || !m.stories.Browsing() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keymap.NewStory):
		m.screen = ScreenWizard
		m.wizard = NewWizardModel(m.experiences, m.gen, m.svc,
			WithWizardRenderer(m.renderer), WithWizardTheme(m.theme))
		return m, tea.Batch(m.wizard.Init(), m.resize()), true

	case key.Matches(msg, m.keymap.Upload):
		if m.uploader == nil {
			return m, nil, true
		}
		m.screen = ScreenUpload
		m.upload = NewUploadModel(m.uploader,
			WithUploadRenderer(m.renderer), WithUploadTheme(m.theme))
		return m, tea.Batch(m.upload.Init(), m.resize()), true

	case key.Matches(msg, m.keymap.Tour):
		m.screen = ScreenTour
		m.tour = NewTourModel(m.flags, WithTourRenderer(m.renderer), WithTourTheme(m.theme))
		return m, m.resize(), true
	}

	return m, nil, false
}

// routeMsg forwards msg to the active screen. Story list result messages
// are routed to the list regardless of screen so in-flight operations
// land even while another screen is up.
func (m AppModel) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case ScreenTour:
		m.tour, cmd = m.tour.Update(msg)
	case ScreenWizard:
		m.wizard, cmd = m.wizard.Update(msg)
	case ScreenUpload:
		m.upload, cmd = m.upload.Update(msg)
	default:
		m.stories, cmd = m.stories.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case storiesLoadedMsg, storyDeletedMsg, storyUpdatedMsg,
		storyAnalyzedMsg, suggestionsMsg, variationsMsg:
		var storiesCmd tea.Cmd
		m.stories, storiesCmd = m.stories.Update(msg)
		cmd = tea.Batch(cmd, storiesCmd)
	}
	return m, cmd
}

// resize replays the last window size so a newly shown screen lays out
// its viewport before the next frame.
func (m AppModel) resize() tea.Cmd {
	if !m.sized {
		return nil
	}
	size := m.lastSize
	return func() tea.Msg { return size }
}

func (m AppModel) loadExperiencesCmd() tea.Cmd {
	if m.expSvc == nil {
		return nil
	}
	expSvc := m.expSvc
	return func() tea.Msg {
		experiences, err := expSvc.ListExperiences(context.Background())
		return experiencesLoadedMsg{experiences: experiences, err: err}
	}
}

// View implements tea.Model.
func (m AppModel) View() string {
	switch m.screen {
	case ScreenTour:
		return m.tour.View()
	case ScreenWizard:
		return m.wizard.View()
	case ScreenUpload:
		return m.upload.View()
	default:
		return m.stories.View()
	}
}

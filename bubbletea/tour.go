package bubbletea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/starprep"
)

// TourFlag is the persisted flag key recording that the tour was completed
// or skipped. While unset the tour is shown on startup.
const TourFlag = "tour_completed"

// TourDoneMsg is emitted when the user finishes or skips the tour.
type TourDoneMsg struct{}

type tourPage struct {
	title string
	body  string
}

var tourPages = []tourPage{
	{
		title: "Welcome to starprep",
		body: "starprep helps you build and rehearse STAR behavioral interview\n" +
			"stories grounded in your actual resume.\n\n" +
			"Situation, Task, Action, Result: the structure interviewers\n" +
			"listen for.",
	},
	{
		title: "Generate from your experience",
		body: "Press g to open the generation wizard. Pick the resume\n" +
			"experiences to draw from, a theme, and a tone, and a draft\n" +
			"story is written and saved for you.\n\n" +
			"Upload a resume first with u if your experience list is empty.",
	},
	{
		title: "Refine and rehearse",
		body: "On any story: e edits it inline, a scores it, s suggests\n" +
			"per-section improvements, and v retells it for other interview\n" +
			"contexts. Expanded stories include probing questions an\n" +
			"interviewer might ask.",
	},
	{
		title: "Find the right story fast",
		body: "/ filters by text across every field, t cycles a theme tag\n" +
			"filter, and c copies the selected story as plain text for\n" +
			"pasting into your notes.",
	},
}

// TourModel is a short first-run walkthrough. It records completion in the
// flag store so it only ever shows once.
type TourModel struct {
	flags starprep.FlagStore

	page     int
	styles   starprep.Styles
	renderer *lipgloss.Renderer
	width    int
	height   int
}

// TourOption configures a TourModel.
type TourOption func(*tourConfig)

type tourConfig struct {
	renderer *lipgloss.Renderer
	theme    starprep.Theme
}

// WithTourRenderer sets a custom lipgloss renderer for the model.
func WithTourRenderer(r *lipgloss.Renderer) TourOption {
	return func(cfg *tourConfig) {
		cfg.renderer = r
	}
}

// WithTourTheme sets the theme for the model.
func WithTourTheme(t starprep.Theme) TourOption {
	return func(cfg *tourConfig) {
		cfg.theme = t
	}
}

// NewTourModel creates the onboarding tour backed by flags.
func NewTourModel(flags starprep.FlagStore, opts ...TourOption) TourModel {
	cfg := &tourConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	return TourModel{
		flags:    flags,
		styles:   styles,
		renderer: cfg.renderer,
	}
}

// TourCompleted reports whether the tour has already been completed or
// skipped according to flags.
func TourCompleted(flags starprep.FlagStore) bool {
	if flags == nil {
		return true
	}
	done, ok := flags.Flag(TourFlag)
	return ok && done
}

// Init implements tea.Model.
func (m TourModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TourModel) Update(msg tea.Msg) (TourModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "enter", " ":
			if m.page < len(tourPages)-1 {
				m.page++
				return m, nil
			}
			return m, m.finish()
		case "left", "h":
			if m.page > 0 {
				m.page--
			}
			return m, nil
		case "esc", "q":
			return m, m.finish()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// finish records completion and hands control back. A failed flag write is
// not fatal: the tour will simply show again next run.
func (m TourModel) finish() tea.Cmd {
	if m.flags != nil {
		_ = m.flags.SetFlag(TourFlag, true)
	}
	return func() tea.Msg { return TourDoneMsg{} }
}

// View implements tea.Model.
func (m TourModel) View() string {
	header := styleFor(m.renderer, m.styles.Title).Bold(true)
	section := styleFor(m.renderer, m.styles.SectionHeader)
	muted := styleFor(m.renderer, m.styles.Muted)

	page := tourPages[m.page]

	var b strings.Builder
	b.WriteString(header.Render(page.title) + "\n\n")
	b.WriteString(page.body + "\n\n")

	dots := make([]string, len(tourPages))
	for i := range tourPages {
		if i == m.page {
			dots[i] = section.Render("●")
		} else {
			dots[i] = muted.Render("○")
		}
	}
	fmt.Fprintf(&b, "%s\n\n", strings.Join(dots, " "))

	if m.page == len(tourPages)-1 {
		b.WriteString(muted.Render("enter:start  ←:back"))
	} else {
		b.WriteString(muted.Render("enter:next  ←:back  esc:skip"))
	}
	return b.String()
}

package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/starprep"
)

// WizardStep identifies a step of the generation wizard.
type WizardStep int

// Wizard steps, in order.
const (
	StepExperiences WizardStep = iota
	StepTheme
	StepTone
	StepCompany
	StepConfirm
)

// storyGeneratedMsg carries the result of a generate-and-save attempt.
type storyGeneratedMsg struct {
	outcome starprep.GenerateOutcome
	err     error
}

// WizardDoneMsg is emitted when the wizard finishes with a story (full or
// partial success) so the surrounding app can switch back to the list.
type WizardDoneMsg struct {
	Story   starprep.Story
	Warning string
}

// WizardCancelledMsg is emitted when the user backs out of the wizard.
type WizardCancelledMsg struct{}

// WizardModel walks the user through story generation: select source
// experiences, pick a theme and tone, optionally target a company, then
// generate and save.
type WizardModel struct {
	wizard *starprep.Wizard
	gen    starprep.StoryGenerator
	svc    starprep.StoryService

	step         WizardStep
	cursor       int
	companyInput textinput.Model
	errText      string

	spin     spinner.Model
	viewport viewport.Model
	keymap   WizardKeyMap
	styles   starprep.Styles
	renderer *lipgloss.Renderer
	width    int
	height   int
	ready    bool
}

// WizardOption configures a WizardModel.
type WizardOption func(*wizardConfig)

type wizardConfig struct {
	renderer *lipgloss.Renderer
	theme    starprep.Theme
}

// WithWizardRenderer sets a custom lipgloss renderer for the model.
func WithWizardRenderer(r *lipgloss.Renderer) WizardOption {
	return func(cfg *wizardConfig) {
		cfg.renderer = r
	}
}

// WithWizardTheme sets the theme for the model.
func WithWizardTheme(t starprep.Theme) WizardOption {
	return func(cfg *wizardConfig) {
		cfg.theme = t
	}
}

// NewWizardModel creates a wizard over the given experiences using gen to
// draft stories and svc to persist them.
func NewWizardModel(experiences []starprep.Experience, gen starprep.StoryGenerator, svc starprep.StoryService, opts ...WizardOption) WizardModel {
	cfg := &wizardConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	company := textinput.New()
	company.Placeholder = "target company (optional)"
	company.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return WizardModel{
		wizard:       starprep.NewWizard(experiences),
		gen:          gen,
		svc:          svc,
		companyInput: company,
		spin:         spin,
		keymap:       DefaultWizardKeyMap(),
		styles:       styles,
		renderer:     cfg.renderer,
	}
}

// Init implements tea.Model.
func (m WizardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WizardModel) Update(msg tea.Msg) (WizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.wizard.Generating() {
			// Everything except cancel intent is ignored while in flight;
			// the request itself is not abortable.
			return m, nil
		}
		return m.handleKeys(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case storyGeneratedMsg:
		if msg.err != nil {
			// Selections survive a generation failure so the user can retry.
			m.wizard.FinishGenerate(false)
			m.errText = msg.err.Error()
			m.refresh()
			return m, nil
		}
		m.wizard.FinishGenerate(true)
		m.errText = ""
		done := WizardDoneMsg{Story: msg.outcome.Story, Warning: msg.outcome.Warning}
		return m, func() tea.Msg { return done }

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.wizard.Generating() {
			m.refresh()
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m WizardModel) handleKeys(msg tea.KeyMsg) (WizardModel, tea.Cmd) {
	if m.step == StepCompany && m.companyInput.Focused() {
		switch {
		case key.Matches(msg, m.keymap.Next), msg.String() == "enter":
			m.wizard.SetCompanyContext(strings.TrimSpace(m.companyInput.Value()))
			m.companyInput.Blur()
			m.step = StepConfirm
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.Prev):
			m.wizard.SetCompanyContext(strings.TrimSpace(m.companyInput.Value()))
			m.companyInput.Blur()
			m.step = StepTone
			m.cursor = m.optionIndex()
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.Cancel):
			return m, func() tea.Msg { return WizardCancelledMsg{} }
		}
		var cmd tea.Cmd
		m.companyInput, cmd = m.companyInput.Update(msg)
		m.refresh()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Cancel):
		return m, func() tea.Msg { return WizardCancelledMsg{} }

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}
		m.refresh()

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refresh()

	case key.Matches(msg, m.keymap.Toggle):
		m.applySelection()
		m.refresh()

	case key.Matches(msg, m.keymap.Prompt):
		if i := int(msg.String()[0] - '1'); i >= 0 && i < len(starprep.Prompts) {
			m.wizard.ApplyPrompt(starprep.Prompts[i])
			m.errText = ""
			m.refresh()
		}

	case key.Matches(msg, m.keymap.Next):
		m.advance()
		m.refresh()
		if m.step == StepCompany {
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keymap.Prev):
		m.retreat()
		m.refresh()
		if m.step == StepCompany {
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keymap.Generate):
		return m.beginGenerate()
	}

	return m, nil
}

// applySelection acts on the option under the cursor for the current step.
func (m *WizardModel) applySelection() {
	switch m.step {
	case StepExperiences:
		m.wizard.ToggleExperience(m.cursor)
		m.errText = ""
	case StepTheme:
		if m.cursor < len(starprep.StoryThemes) {
			m.wizard.SetTheme(starprep.StoryThemes[m.cursor])
			m.errText = ""
		}
	case StepTone:
		if m.cursor < len(starprep.Tones) {
			m.wizard.SetTone(starprep.Tones[m.cursor])
		}
	}
}

func (m *WizardModel) advance() {
	if m.step >= StepConfirm {
		return
	}
	m.step++
	m.enterStep()
}

func (m *WizardModel) retreat() {
	if m.step <= StepExperiences {
		return
	}
	m.step--
	m.enterStep()
}

func (m *WizardModel) enterStep() {
	m.cursor = m.optionIndex()
	if m.step == StepCompany {
		m.companyInput.SetValue(m.wizard.CompanyContext())
		m.companyInput.Focus()
	} else {
		m.companyInput.Blur()
	}
}

// optionIndex returns the cursor position matching the current choice for
// the step being entered, so a revisited step starts on its selection.
func (m WizardModel) optionIndex() int {
	switch m.step {
	case StepTheme:
		for i, theme := range starprep.StoryThemes {
			if theme == m.wizard.Theme() {
				return i
			}
		}
	case StepTone:
		for i, tone := range starprep.Tones {
			if tone == m.wizard.Tone() {
				return i
			}
		}
	}
	return 0
}

func (m WizardModel) optionCount() int {
	switch m.step {
	case StepExperiences:
		return len(m.wizard.Experiences())
	case StepTheme:
		return len(starprep.StoryThemes)
	case StepTone:
		return len(starprep.Tones)
	default:
		return 1
	}
}

// beginGenerate validates via the wizard and, when valid, kicks off the
// generate-then-save command. Validation failures surface inline and no
// collaborator is called.
func (m WizardModel) beginGenerate() (WizardModel, tea.Cmd) {
	req, err := m.wizard.BeginGenerate()
	if err != nil {
		m.errText = err.Error()
		m.refresh()
		return m, nil
	}

	m.errText = ""
	m.refresh()

	gen := m.gen
	svc := m.svc
	cmd := func() tea.Msg {
		outcome, err := starprep.GenerateAndSave(context.Background(), gen, svc, req)
		return storyGeneratedMsg{outcome: outcome, err: err}
	}
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m *WizardModel) handleWindowSize(msg tea.WindowSizeMsg) WizardModel {
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
func (m WizardModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

func (m *WizardModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m WizardModel) renderContent() string {
	var b strings.Builder

	header := styleFor(m.renderer, m.styles.Title).Bold(true)
	section := styleFor(m.renderer, m.styles.SectionHeader)
	muted := styleFor(m.renderer, m.styles.Muted)

	fmt.Fprintf(&b, "%s %s\n", header.Render("Generate Story"),
		muted.Render(fmt.Sprintf("step %d/5", int(m.step)+1)))
	if m.errText != "" {
		fmt.Fprintf(&b, "%s\n", styleFor(m.renderer, m.styles.Error).Render("✗ "+m.errText))
	}
	b.WriteString("\n")

	if m.wizard.Generating() {
		fmt.Fprintf(&b, "%s generating story...\n", m.spin.View())
		return b.String()
	}

	switch m.step {
	case StepExperiences:
		fmt.Fprintf(&b, "%s\n", section.Render("Which experiences should the story draw from?"))
		for i, exp := range m.wizard.Experiences() {
			check := "[ ]"
			if m.wizard.ExperienceSelected(i) {
				check = "[x]"
			}
			line := fmt.Sprintf("%s %s", check, exp.DisplayName())
			if exp.Company != "" {
				line += muted.Render(" @ " + exp.Company)
			}
			b.WriteString(m.optionLine(line, i == m.cursor))
		}

	case StepTheme:
		fmt.Fprintf(&b, "%s\n", section.Render("Pick a story theme"))
		for i, theme := range starprep.StoryThemes {
			mark := "( )"
			if theme == m.wizard.Theme() {
				mark = "(•)"
			}
			b.WriteString(m.optionLine(mark+" "+theme, i == m.cursor))
		}
		b.WriteString("\n" + section.Render("Or answer a common question:") + "\n")
		for i, p := range starprep.Prompts {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, muted.Render(p.Question))
		}

	case StepTone:
		fmt.Fprintf(&b, "%s\n", section.Render("Pick a tone"))
		for i, tone := range starprep.Tones {
			mark := "( )"
			if tone == m.wizard.Tone() {
				mark = "(•)"
			}
			b.WriteString(m.optionLine(mark+" "+tone, i == m.cursor))
		}

	case StepCompany:
		fmt.Fprintf(&b, "%s\n%s\n", section.Render("Tailoring for a specific company?"), m.companyInput.View())

	case StepConfirm:
		fmt.Fprintf(&b, "%s\n", section.Render("Ready to generate"))
		fmt.Fprintf(&b, "  experiences: %d selected\n", m.wizard.SelectedCount())
		fmt.Fprintf(&b, "  theme:       %s\n", m.wizard.Theme())
		fmt.Fprintf(&b, "  tone:        %s\n", m.wizard.Tone())
		if m.wizard.CompanyContext() != "" {
			fmt.Fprintf(&b, "  company:     %s\n", m.wizard.CompanyContext())
		}
	}

	return b.String()
}

func (m WizardModel) optionLine(line string, selected bool) string {
	if selected {
		return styleFor(m.renderer, m.styles.Selected).Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

func (m WizardModel) statusBarView() string {
	barStyle := styleFor(m.renderer, m.styles.StatusBar)

	var hints string
	switch {
	case m.wizard.Generating():
		hints = "generating..."
	case m.step == StepCompany:
		hints = "enter:next  shift+tab:back  esc:cancel"
	case m.step == StepConfirm:
		hints = "ctrl+g:generate  shift+tab:back  esc:cancel"
	default:
		hints = "j/k:move  space:select  tab:next  shift+tab:back  ctrl+g:generate  esc:cancel"
	}

	content := barStyle.Render(" " + hints + " ")
	if w := lipgloss.Width(content); m.width > w {
		content += barStyle.Render(strings.Repeat(" ", m.width-w))
	}
	return content
}

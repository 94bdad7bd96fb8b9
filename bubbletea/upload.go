package bubbletea

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/starprep"
)

// resumeUploadedMsg carries the result of a resume upload.
type resumeUploadedMsg struct {
	name string
	err  error
}

// UploadDoneMsg is emitted after a successful resume upload.
type UploadDoneMsg struct {
	Name string
}

// UploadCancelledMsg is emitted when the user backs out of the picker.
type UploadCancelledMsg struct{}

// UploadModel lets the user pick a resume document and send it to the
// backend for parsing. Only PDF and Word documents are accepted; the
// picker filters by extension and the selection is re-validated by
// detected MIME type before any bytes leave the machine.
type UploadModel struct {
	uploader starprep.ResumeUploader

	picker    filepicker.Model
	uploading bool
	errText   string

	spin     spinner.Model
	styles   starprep.Styles
	renderer *lipgloss.Renderer
	width    int
	height   int
}

// UploadOption configures an UploadModel.
type UploadOption func(*uploadConfig)

type uploadConfig struct {
	renderer *lipgloss.Renderer
	theme    starprep.Theme
	dir      string
}

// WithUploadRenderer sets a custom lipgloss renderer for the model.
func WithUploadRenderer(r *lipgloss.Renderer) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.renderer = r
	}
}

// WithUploadTheme sets the theme for the model.
func WithUploadTheme(t starprep.Theme) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.theme = t
	}
}

// WithUploadDir sets the directory the picker starts in.
func WithUploadDir(dir string) UploadOption {
	return func(cfg *uploadConfig) {
		cfg.dir = dir
	}
}

// NewUploadModel creates a resume upload screen over uploader.
func NewUploadModel(uploader starprep.ResumeUploader, opts ...UploadOption) UploadModel {
	cfg := &uploadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	styles := defaultStyles()
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	picker := filepicker.New()
	picker.AllowedTypes = []string{".pdf", ".doc", ".docx"}
	picker.CurrentDirectory = cfg.dir
	if picker.CurrentDirectory == "" {
		if home, err := os.UserHomeDir(); err == nil {
			picker.CurrentDirectory = home
		} else {
			picker.CurrentDirectory = "."
		}
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return UploadModel{
		uploader: uploader,
		picker:   picker,
		spin:     spin,
		styles:   styles,
		renderer: cfg.renderer,
	}
}

// Init implements tea.Model.
func (m UploadModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.uploading {
			return m, nil
		}
		if msg.String() == "esc" {
			return m, func() tea.Msg { return UploadCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.Height = msg.Height - 4

	case resumeUploadedMsg:
		m.uploading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		done := UploadDoneMsg{Name: msg.name}
		return m, func() tea.Msg { return done }

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.uploading {
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if selected, path := m.picker.DidSelectFile(msg); selected && !m.uploading {
		return m.beginUpload(path, cmd)
	}
	if disabled, path := m.picker.DidSelectDisabledFile(msg); disabled {
		m.errText = fmt.Sprintf("%s is not a PDF or Word document", path)
	}

	return m, cmd
}

// SelectFile validates path and starts the upload. The picker calls this
// through Update; it is exported so a selection can be driven directly.
func (m UploadModel) SelectFile(path string) (UploadModel, tea.Cmd) {
	return m.beginUpload(path, nil)
}

// beginUpload validates the selection and starts the upload command. The
// MIME check runs again here so a file that slipped past the extension
// filter is still refused before any request is made.
func (m UploadModel) beginUpload(path string, prior tea.Cmd) (UploadModel, tea.Cmd) {
	mime := starprep.DetectDocumentMIME(path)
	if !starprep.AllowedDocument(mime) {
		m.errText = fmt.Sprintf("%s is not a PDF or Word document", path)
		return m, prior
	}

	info, err := os.Stat(path)
	if err != nil {
		m.errText = err.Error()
		return m, prior
	}

	m.uploading = true
	m.errText = ""

	uploader := m.uploader
	file := starprep.FileInfo{
		URI:      path,
		Name:     info.Name(),
		Size:     info.Size(),
		MIMEType: mime,
	}
	cmd := func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return resumeUploadedMsg{err: err}
		}
		defer f.Close()
		err = uploader.UploadResume(context.Background(), file, f)
		return resumeUploadedMsg{name: file.Name, err: err}
	}
	return m, tea.Batch(prior, cmd, m.spin.Tick)
}

// View implements tea.Model.
func (m UploadModel) View() string {
	var b strings.Builder

	header := styleFor(m.renderer, m.styles.Title).Bold(true)
	muted := styleFor(m.renderer, m.styles.Muted)

	b.WriteString(header.Render("Upload Resume") + "\n")
	b.WriteString(muted.Render("Pick a PDF or Word document. esc to go back.") + "\n")
	if m.errText != "" {
		b.WriteString(styleFor(m.renderer, m.styles.Error).Render("✗ "+m.errText) + "\n")
	}
	b.WriteString("\n")

	if m.uploading {
		fmt.Fprintf(&b, "%s uploading...\n", m.spin.View())
		return b.String()
	}

	b.WriteString(m.picker.View())
	return b.String()
}

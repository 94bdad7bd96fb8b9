package bubbletea_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/starprep"
	"github.com/fwojciec/starprep/bubbletea"
	"github.com/fwojciec/starprep/mock"
)

func TestUploadModel_EscCancels(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewUploadModel(&mock.ResumeUploader{},
		bubbletea.WithUploadDir(t.TempDir()))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, bubbletea.UploadCancelledMsg{}, cmd())
}

func TestUploadModel_UploadsSelectedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

	var gotFile starprep.FileInfo
	var gotContent []byte
	uploader := &mock.ResumeUploader{
		UploadResumeFn: func(ctx context.Context, file starprep.FileInfo, content io.Reader) error {
			gotFile = file
			var err error
			gotContent, err = io.ReadAll(content)
			return err
		},
	}
	m := bubbletea.NewUploadModel(uploader, bubbletea.WithUploadDir(dir))

	m, cmd := m.SelectFile(path)
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if result := c(); result != nil {
				m, _ = m.Update(result)
			}
		}
	} else {
		m, _ = m.Update(msg)
	}

	assert.Equal(t, "resume.pdf", gotFile.Name)
	assert.Equal(t, starprep.MIMEPDF, gotFile.MIMEType)
	assert.Equal(t, int64(len("%PDF-1.4 test")), gotFile.Size)
	assert.Equal(t, "%PDF-1.4 test", string(gotContent))
}

func TestUploadModel_RejectsDisallowedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	uploader := &mock.ResumeUploader{
		UploadResumeFn: func(ctx context.Context, file starprep.FileInfo, content io.Reader) error {
			t.Fatal("UploadResume must not be called for a disallowed document")
			return nil
		},
	}
	m := bubbletea.NewUploadModel(uploader, bubbletea.WithUploadDir(dir))

	m, _ = m.SelectFile(path)
	assert.Contains(t, m.View(), "not a PDF or Word document")
}

func TestUploadModel_UploadFailureShown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.docx")
	require.NoError(t, os.WriteFile(path, []byte("doc"), 0o644))

	uploader := &mock.ResumeUploader{
		UploadResumeFn: func(ctx context.Context, file starprep.FileInfo, content io.Reader) error {
			return assert.AnError
		},
	}
	m := bubbletea.NewUploadModel(uploader, bubbletea.WithUploadDir(dir))

	m, cmd := m.SelectFile(path)
	require.NotNil(t, cmd)

	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if result := c(); result != nil {
				m, _ = m.Update(result)
			}
		}
	}

	assert.Contains(t, m.View(), assert.AnError.Error())
}

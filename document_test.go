package starprep_test

import (
	"testing"

	"github.com/fwojciec/starprep"
	"github.com/stretchr/testify/assert"
)

func TestAllowedDocument(t *testing.T) {
	t.Parallel()

	assert.True(t, starprep.AllowedDocument("application/pdf"))
	assert.True(t, starprep.AllowedDocument("application/msword"))
	assert.True(t, starprep.AllowedDocument("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))

	assert.False(t, starprep.AllowedDocument("text/plain"))
	assert.False(t, starprep.AllowedDocument(""))
	assert.False(t, starprep.AllowedDocument("application/PDF"), "MIME types match exactly")
}

func TestDetectDocumentMIME(t *testing.T) {
	t.Parallel()

	assert.Equal(t, starprep.MIMEPDF, starprep.DetectDocumentMIME("resume.pdf"))
	assert.Equal(t, starprep.MIMEPDF, starprep.DetectDocumentMIME("RESUME.PDF"))
	assert.Equal(t, starprep.MIMEDoc, starprep.DetectDocumentMIME("resume.doc"))
	assert.Equal(t, starprep.MIMEDocx, starprep.DetectDocumentMIME("resume.docx"))
	assert.Empty(t, starprep.DetectDocumentMIME("resume.txt"))
	assert.Empty(t, starprep.DetectDocumentMIME("resume"))
}

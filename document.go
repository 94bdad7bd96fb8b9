package starprep

import (
	"path/filepath"
	"strings"
)

// Resume document MIME types accepted for upload.
const (
	MIMEPDF  = "application/pdf"
	MIMEDoc  = "application/msword"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FileInfo describes a document chosen by the user.
type FileInfo struct {
	URI      string
	Name     string
	Size     int64
	MIMEType string
}

// AllowedDocument reports whether mimeType is on the resume upload
// allow-list. Callers validate picker results against this again even
// when the picker was already restricted, since the picker is an
// external collaborator.
func AllowedDocument(mimeType string) bool {
	switch mimeType {
	case MIMEPDF, MIMEDoc, MIMEDocx:
		return true
	default:
		return false
	}
}

// DetectDocumentMIME maps a file name to its document MIME type by
// extension. Returns "" for anything outside the allow-list.
func DetectDocumentMIME(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MIMEPDF
	case ".doc":
		return MIMEDoc
	case ".docx":
		return MIMEDocx
	default:
		return ""
	}
}

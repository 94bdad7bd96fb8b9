package mock

import (
	"context"
	"io"

	"github.com/fwojciec/starprep"
)

// Compile-time interface verification.
var _ starprep.ResumeUploader = (*ResumeUploader)(nil)

// ResumeUploader is a mock implementation of starprep.ResumeUploader.
type ResumeUploader struct {
	UploadResumeFn func(ctx context.Context, file starprep.FileInfo, content io.Reader) error
}

func (u *ResumeUploader) UploadResume(ctx context.Context, file starprep.FileInfo, content io.Reader) error {
	return u.UploadResumeFn(ctx, file, content)
}

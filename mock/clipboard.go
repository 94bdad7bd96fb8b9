package mock

import "github.com/fwojciec/starprep"

// Compile-time interface verification.
var _ starprep.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of starprep.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

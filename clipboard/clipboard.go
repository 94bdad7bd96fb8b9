// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/fwojciec/starprep"
)

// Ensure Command implements the Clipboard interface.
var _ starprep.Clipboard = (*Command)(nil)

// ErrNoClipboard is returned when no clipboard command is available.
var ErrNoClipboard = errors.New("no clipboard command found (tried pbcopy, wl-copy, xclip)")

// candidates are tried in order; the first available command wins.
var candidates = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
}

// Command implements Clipboard by piping content to a system command.
type Command struct {
	argv []string
}

// New returns a Command using the first clipboard tool found on PATH.
func New() (*Command, error) {
	for _, argv := range candidates {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return &Command{argv: argv}, nil
		}
	}
	return nil, ErrNoClipboard
}

// Copy writes content to the system clipboard.
func (c *Command) Copy(content string) error {
	cmd := exec.Command(c.argv[0], c.argv[1:]...)
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}

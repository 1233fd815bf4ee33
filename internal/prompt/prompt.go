// Package prompt asks the operator for values, either through small
// bubbletea programs when attached to a terminal or through plain line
// reads otherwise.
package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/gfanton/hatch/internal/flow"
	"golang.org/x/term"
)

var (
	// ErrInterrupted is returned when the operator aborts a prompt.
	ErrInterrupted = errors.New("prompt interrupted")
	// ErrInputClosed is returned when the input stream ends before an answer.
	ErrInputClosed = errors.New("input closed")
)

var (
	_ flow.Prompter = (*TUI)(nil)
	_ flow.Prompter = (*LinePrompter)(nil)
)

// New returns a TUI prompter when in is a terminal, a LinePrompter
// otherwise. plain forces the line prompter.
func New(in io.Reader, out io.Writer, plain bool) flow.Prompter {
	if !plain && IsTerminal(in) {
		return NewTUI(in, out)
	}
	return NewLinePrompter(in, out)
}

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

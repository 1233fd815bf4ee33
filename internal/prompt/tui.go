package prompt

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs one bubbletea program per prompt.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a terminal prompter reading keys from in and drawing on out.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{
		in:  in,
		out: out,
	}
}

type abortable interface {
	tea.Model
	Aborted() bool
}

func (t *TUI) run(ctx context.Context, field abortable) (tea.Model, error) {
	p := tea.NewProgram(field,
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		}
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}

	if f, ok := final.(abortable); ok && f.Aborted() {
		return nil, ErrInterrupted
	}

	return final, nil
}

func (t *TUI) Password(ctx context.Context, message string) (string, error) {
	final, err := t.run(ctx, NewPasswordField(message))
	if err != nil {
		return "", err
	}
	return final.(TextField).Value(), nil
}

func (t *TUI) Input(ctx context.Context, message, initial string) (string, error) {
	final, err := t.run(ctx, NewTextField(message, initial))
	if err != nil {
		return "", err
	}
	return final.(TextField).Value(), nil
}

func (t *TUI) FuzzySelect(ctx context.Context, message string, items []string, defaultIdx int) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no options provided")
	}

	final, err := t.run(ctx, NewSelectField(message, items, defaultIdx))
	if err != nil {
		return -1, err
	}
	return final.(SelectField).Selected(), nil
}

func (t *TUI) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	final, err := t.run(ctx, NewConfirmField(message, defaultYes))
	if err != nil {
		return false, err
	}
	return final.(ConfirmField).Value(), nil
}

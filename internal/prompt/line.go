package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gfanton/hatch/internal/query"
	"golang.org/x/term"
)

// LinePrompter prompts with plain line reads. It is used when the input is
// not a terminal, e.g. when answers are piped in, or when forced with plain.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret reads a line without echo. It is nil when the input is not
	// a terminal.
	readSecret func(ctx context.Context) ([]byte, error)
}

// NewLinePrompter creates a line based prompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.readSecret = terminalSecret(int(f.Fd()))
	}
	return p
}

type readResult[T any] struct {
	value T
	err   error
}

// readCancellable runs read in its own goroutine and returns early with
// ErrInterrupted when ctx is done, calling onCancel first. The abandoned
// read stays blocked until the input yields; nothing reads from the prompter
// again once a prompt was interrupted.
func readCancellable[T any](ctx context.Context, read func() (T, error), onCancel func()) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	res := make(chan readResult[T], 1)
	go func() {
		v, err := read()
		res <- readResult[T]{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		return zero, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	case r := <-res:
		return r.value, r.err
	}
}

// terminalSecret reads from the terminal fd with echo disabled. On cancel
// the terminal state saved before the read is restored.
func terminalSecret(fd int) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		state, err := term.GetState(fd)
		if err != nil {
			return nil, fmt.Errorf("failed to get terminal state: %w", err)
		}

		return readCancellable(ctx, func() ([]byte, error) {
			return term.ReadPassword(fd)
		}, func() {
			_ = term.Restore(fd, state)
		})
	}
}

// readLine returns the next trimmed line.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	line, err := readCancellable(ctx, func() (string, error) {
		return p.in.ReadString('\n')
	}, func() {
		fmt.Fprintln(p.out)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInterrupted):
			return "", err
		case errors.Is(err, io.EOF):
			if line != "" {
				return strings.TrimSpace(line), nil
			}
			fmt.Fprintln(p.out)
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Password(ctx context.Context, message string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", message)

		var (
			secret string
			err    error
		)
		if p.readSecret != nil {
			var raw []byte
			raw, err = p.readSecret(ctx)
			fmt.Fprintln(p.out)
			if err != nil {
				if errors.Is(err, ErrInterrupted) {
					return "", err
				}
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			secret = strings.TrimSpace(string(raw))
		} else if secret, err = p.readLine(ctx); err != nil {
			return "", err
		}

		if secret != "" {
			return secret, nil
		}
		fmt.Fprintln(p.out, "a value is required")
	}
}

// Input reads a line. An empty line keeps initial; an empty answer with no
// initial value asks again.
func (p *LinePrompter) Input(ctx context.Context, message, initial string) (string, error) {
	for {
		if initial != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", message, initial)
		} else {
			fmt.Fprintf(p.out, "%s: ", message)
		}

		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		if answer == "" {
			answer = initial
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, "a value is required")
	}
}

// FuzzySelect lists items and accepts a 1-based index, an item label or a
// fuzzy query resolved to the closest item. An empty line keeps defaultIdx.
func (p *LinePrompter) FuzzySelect(ctx context.Context, message string, items []string, defaultIdx int) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no options provided")
	}
	if defaultIdx < 0 || defaultIdx >= len(items) {
		defaultIdx = 0
	}

	for i, item := range items {
		marker := "  "
		if i == defaultIdx {
			marker = "> "
		}
		fmt.Fprintf(p.out, "%s%d. %s\n", marker, i+1, item)
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", message, items[defaultIdx])

		answer, err := p.readLine(ctx)
		if err != nil {
			return -1, err
		}

		if answer == "" {
			return defaultIdx, nil
		}

		if idx, err := strconv.Atoi(answer); err == nil {
			if idx >= 1 && idx <= len(items) {
				return idx - 1, nil
			}
			fmt.Fprintf(p.out, "invalid selection: %d\n", idx)
			continue
		}

		if m, ok := query.Best(answer, items); ok {
			return m.Index, nil
		}
		fmt.Fprintf(p.out, "no option matches %q\n", answer)
	}
}

// Confirm accepts y/yes and n/no, an empty line keeps the default.
func (p *LinePrompter) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s ", message, hint)

		answer, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "please answer yes or no")
	}
}

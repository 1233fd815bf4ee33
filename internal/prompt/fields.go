package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gfanton/hatch/internal/query"
)

// ---------------------------------------------------------------------------
// TextField
// ---------------------------------------------------------------------------

// TextField is a single line text input. The initial value is editable, and
// an empty answer is refused.
type TextField struct {
	prompt  string
	input   textinput.Model
	masked  bool
	done    bool
	aborted bool
	errMsg  string
}

// NewTextField creates a text field pre-filled with initial.
func NewTextField(prompt, initial string) TextField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(initial)
	ti.Focus()

	return TextField{
		prompt: prompt,
		input:  ti,
	}
}

// NewPasswordField creates a text field that masks its input.
func NewPasswordField(prompt string) TextField {
	f := NewTextField(prompt, "")
	f.masked = true
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func (f TextField) Init() tea.Cmd {
	return textinput.Blink
}

func (f TextField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.aborted = true
			return f, tea.Quit
		case tea.KeyEnter:
			if strings.TrimSpace(f.input.Value()) == "" {
				f.errMsg = "a value is required"
				return f, nil
			}
			f.errMsg = ""
			f.done = true
			f.input.Blur()
			return f, tea.Quit
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f TextField) View() string {
	if f.done {
		answer := f.input.Value()
		if f.masked {
			answer = maskedAnswer
		}
		return fmt.Sprintf("%s %s · %s\n", doneMark, promptStyle.Render(f.prompt), answerStyle.Render(answer))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", pendingMark, promptStyle.Render(f.prompt), f.input.View())
	if f.errMsg != "" {
		fmt.Fprintf(&b, "\n  %s", errorStyle.Render(f.errMsg))
	}
	b.WriteString("\n")
	return b.String()
}

// Value returns the current text.
func (f TextField) Value() string {
	return f.input.Value()
}

// Done reports whether the operator submitted a value.
func (f TextField) Done() bool {
	return f.done
}

// Aborted reports whether the operator cancelled the prompt.
func (f TextField) Aborted() bool {
	return f.aborted
}

// ---------------------------------------------------------------------------
// SelectField
// ---------------------------------------------------------------------------

// SelectField is a single choice menu with a fuzzy filter line. Typing
// narrows and reorders the visible items; arrows move the cursor.
type SelectField struct {
	prompt   string
	items    []string
	filter   textinput.Model
	matches  []query.Match
	cursor   int
	selected int
	done     bool
	aborted  bool
}

// NewSelectField creates a menu over items with the cursor on defaultIdx.
func NewSelectField(prompt string, items []string, defaultIdx int) SelectField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter"
	ti.Focus()

	f := SelectField{
		prompt:   prompt,
		items:    items,
		filter:   ti,
		matches:  query.Rank("", items, 0),
		selected: -1,
	}
	if defaultIdx >= 0 && defaultIdx < len(items) {
		f.cursor = defaultIdx
	}
	return f
}

func (f SelectField) Init() tea.Cmd {
	return textinput.Blink
}

func (f SelectField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.aborted = true
			return f, tea.Quit
		case tea.KeyEnter:
			if len(f.matches) == 0 {
				return f, nil
			}
			f.selected = f.matches[f.cursor].Index
			f.done = true
			return f, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if n := len(f.matches); n > 0 {
				f.cursor = (f.cursor - 1 + n) % n
			}
			return f, nil
		case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
			if n := len(f.matches); n > 0 {
				f.cursor = (f.cursor + 1) % n
			}
			return f, nil
		}
	}

	before := f.filter.Value()

	var cmd tea.Cmd
	f.filter, cmd = f.filter.Update(msg)
	if after := f.filter.Value(); after != before {
		f.matches = query.Rank(after, f.items, 0)
		f.cursor = 0
	}
	return f, cmd
}

func (f SelectField) View() string {
	if f.done {
		return fmt.Sprintf("%s %s · %s\n", doneMark, promptStyle.Render(f.prompt), answerStyle.Render(f.items[f.selected]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s\n", pendingMark, promptStyle.Render(f.prompt), f.filter.View())
	if len(f.matches) == 0 {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render("no match"))
		return b.String()
	}

	for i, m := range f.matches {
		if i == f.cursor {
			fmt.Fprintf(&b, "%s %s\n", cursorStyle.Render(">"), cursorStyle.Render(m.Label))
			continue
		}
		fmt.Fprintf(&b, "  %s\n", m.Label)
	}
	return b.String()
}

// Selected returns the index of the chosen item in the original list, or -1.
func (f SelectField) Selected() int {
	return f.selected
}

// Highlighted returns the index of the item under the cursor, or -1.
func (f SelectField) Highlighted() int {
	if len(f.matches) == 0 {
		return -1
	}
	return f.matches[f.cursor].Index
}

// Done reports whether the operator chose an item.
func (f SelectField) Done() bool {
	return f.done
}

// Aborted reports whether the operator cancelled the prompt.
func (f SelectField) Aborted() bool {
	return f.aborted
}

// ---------------------------------------------------------------------------
// ConfirmField
// ---------------------------------------------------------------------------

// ConfirmField is a yes/no question. y and n answer immediately, Enter keeps
// the highlighted answer.
type ConfirmField struct {
	prompt  string
	value   bool
	done    bool
	aborted bool
}

// NewConfirmField creates a confirmation with the given default answer.
func NewConfirmField(prompt string, defaultYes bool) ConfirmField {
	return ConfirmField{
		prompt: prompt,
		value:  defaultYes,
	}
}

func (f ConfirmField) Init() tea.Cmd {
	return nil
}

func (f ConfirmField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		f.aborted = true
		return f, tea.Quit
	case tea.KeyEnter:
		f.done = true
		return f, tea.Quit
	case tea.KeyLeft, tea.KeyRight, tea.KeyTab:
		f.value = !f.value
		return f, nil
	}

	switch key.String() {
	case "y", "Y":
		f.value, f.done = true, true
		return f, tea.Quit
	case "n", "N":
		f.value, f.done = false, true
		return f, tea.Quit
	}
	return f, nil
}

func (f ConfirmField) View() string {
	if f.done {
		answer := "no"
		if f.value {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s · %s\n", doneMark, promptStyle.Render(f.prompt), answerStyle.Render(answer))
	}

	yes, no := "yes", "no"
	if f.value {
		yes = cursorStyle.Render(yes)
		no = dimStyle.Render(no)
	} else {
		yes = dimStyle.Render(yes)
		no = cursorStyle.Render(no)
	}
	return fmt.Sprintf("%s %s %s / %s\n", pendingMark, promptStyle.Render(f.prompt), yes, no)
}

// Value returns the current answer.
func (f ConfirmField) Value() bool {
	return f.value
}

// Done reports whether the operator answered.
func (f ConfirmField) Done() bool {
	return f.done
}

// Aborted reports whether the operator cancelled the prompt.
func (f ConfirmField) Aborted() bool {
	return f.aborted
}

package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeRunes(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

// ---------------------------------------------------------------------------
// TextField tests
// ---------------------------------------------------------------------------

func TestTextField_InitialValue(t *testing.T) {
	f := NewTextField("Directory", "myapp")
	assert.Equal(t, "myapp", f.Value())

	m, cmd := press(f, tea.KeyEnter)
	require.NotNil(t, cmd)

	f = m.(TextField)
	assert.True(t, f.Done())
	assert.False(t, f.Aborted())
	assert.Equal(t, "myapp", f.Value())
	assert.Contains(t, f.View(), "myapp")
}

func TestTextField_Edit(t *testing.T) {
	var m tea.Model = NewTextField("Directory", "myapp")
	m = typeRunes(t, m, "-dev")
	m, _ = press(m, tea.KeyEnter)

	f := m.(TextField)
	assert.True(t, f.Done())
	assert.Equal(t, "myapp-dev", f.Value())
}

func TestTextField_Backspace(t *testing.T) {
	var m tea.Model = NewTextField("Directory", "myapp")
	m, _ = press(m, tea.KeyBackspace)
	m, _ = press(m, tea.KeyBackspace)

	assert.Equal(t, "mya", m.(TextField).Value())
}

func TestTextField_RequiresValue(t *testing.T) {
	var m tea.Model = NewTextField("Project name", "")

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)

	f := m.(TextField)
	assert.False(t, f.Done())
	assert.Contains(t, f.View(), "a value is required")

	m = typeRunes(t, f, "blog")
	m, _ = press(m, tea.KeyEnter)
	assert.True(t, m.(TextField).Done())
	assert.Equal(t, "blog", m.(TextField).Value())
}

func TestTextField_Abort(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m, cmd := press(NewTextField("Project name", ""), k)
		require.NotNil(t, cmd)
		assert.True(t, m.(TextField).Aborted())
		assert.False(t, m.(TextField).Done())
	}
}

func TestPasswordField_Masked(t *testing.T) {
	var m tea.Model = NewPasswordField("API key")
	m = typeRunes(t, m, "s3cret")

	assert.NotContains(t, m.View(), "s3cret")

	m, _ = press(m, tea.KeyEnter)
	f := m.(TextField)
	assert.Equal(t, "s3cret", f.Value())
	assert.NotContains(t, f.View(), "s3cret")
	assert.Contains(t, f.View(), maskedAnswer)
}

// ---------------------------------------------------------------------------
// SelectField tests
// ---------------------------------------------------------------------------

var testFrameworks = []string{"axum", "rocket", "tide"}

func TestSelectField_Default(t *testing.T) {
	f := NewSelectField("Framework", testFrameworks, 0)
	assert.Equal(t, 0, f.Highlighted())
	assert.Equal(t, -1, f.Selected())

	m, cmd := press(f, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.(SelectField).Done())
	assert.Equal(t, 0, m.(SelectField).Selected())
}

func TestSelectField_Navigation(t *testing.T) {
	var m tea.Model = NewSelectField("Framework", testFrameworks, 0)

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, 1, m.(SelectField).Highlighted())

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, 0, m.(SelectField).Highlighted(), "down from last wraps")

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, 2, m.(SelectField).Highlighted(), "up from first wraps")

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, 2, m.(SelectField).Selected())
}

func TestSelectField_Filter(t *testing.T) {
	var m tea.Model = NewSelectField("Framework", testFrameworks, 0)

	m = typeRunes(t, m, "rck")
	f := m.(SelectField)
	assert.Equal(t, 1, f.Highlighted())
	assert.Contains(t, f.View(), "rocket")
	assert.NotContains(t, f.View(), "axum")

	m, _ = press(f, tea.KeyEnter)
	assert.Equal(t, 1, m.(SelectField).Selected())
}

func TestSelectField_FilterReorders(t *testing.T) {
	var m tea.Model = NewSelectField("Framework", testFrameworks, 0)

	// tide starts with t, rocket only contains it
	m = typeRunes(t, m, "t")
	assert.Equal(t, 2, m.(SelectField).Highlighted())

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, 1, m.(SelectField).Highlighted())
}

func TestSelectField_NoMatch(t *testing.T) {
	var m tea.Model = NewSelectField("Framework", testFrameworks, 0)

	m = typeRunes(t, m, "zz")
	assert.Equal(t, -1, m.(SelectField).Highlighted())
	assert.Contains(t, m.View(), "no match")

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.(SelectField).Done())
}

func TestSelectField_Abort(t *testing.T) {
	m, cmd := press(NewSelectField("Framework", testFrameworks, 0), tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.True(t, m.(SelectField).Aborted())
	assert.Equal(t, -1, m.(SelectField).Selected())
}

// ---------------------------------------------------------------------------
// ConfirmField tests
// ---------------------------------------------------------------------------

func TestConfirmField(t *testing.T) {
	tests := []struct {
		name       string
		defaultYes bool
		keys       []tea.KeyMsg
		expected   bool
		aborted    bool
	}{
		{
			name:       "enter keeps default yes",
			defaultYes: true,
			keys:       []tea.KeyMsg{{Type: tea.KeyEnter}},
			expected:   true,
		},
		{
			name:       "enter keeps default no",
			defaultYes: false,
			keys:       []tea.KeyMsg{{Type: tea.KeyEnter}},
			expected:   false,
		},
		{
			name:       "n answers no",
			defaultYes: true,
			keys:       []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'n'}}},
			expected:   false,
		},
		{
			name:       "Y answers yes",
			defaultYes: false,
			keys:       []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'Y'}}},
			expected:   true,
		},
		{
			name:       "toggle then enter",
			defaultYes: true,
			keys:       []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEnter}},
			expected:   false,
		},
		{
			name:       "ctrl+c aborts",
			defaultYes: true,
			keys:       []tea.KeyMsg{{Type: tea.KeyCtrlC}},
			expected:   true,
			aborted:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewConfirmField("Create environment?", tt.defaultYes)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}

			f := m.(ConfirmField)
			assert.Equal(t, tt.expected, f.Value())
			assert.Equal(t, tt.aborted, f.Aborted())
			assert.Equal(t, !tt.aborted, f.Done())
		})
	}
}

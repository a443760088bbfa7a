package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotice_DismissQueue(t *testing.T) {
	n := NewNotice(themes.Default)
	assert.False(t, n.Visible())
	assert.Empty(t, n.View())

	n.Show("first")
	n.Show("second")
	assert.Equal(t, "first", n.Message())
	assert.Equal(t, 1, n.Pending())
	assert.Contains(t, n.View(), "first")

	n, cmd := n.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd, "other keys do not dismiss")
	assert.Equal(t, "first", n.Message())

	n, cmd = n.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "second", n.Message())

	n, cmd = n.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, NoticeDismissedMsg{}, cmd())
	assert.False(t, n.Visible())
}

func TestConfirm_Answers(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		name string
		want bool
	}{
		{name: "y", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, want: true},
		{name: "enter", key: tea.KeyMsg{Type: tea.KeyEnter}, want: true},
		{name: "n", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, want: false},
		{name: "esc", key: tea.KeyMsg{Type: tea.KeyEsc}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfirm(themes.Default)
			c.Ask("Assign 2 patterns?")
			assert.Contains(t, c.View(), "Assign 2 patterns?")

			c, cmd := c.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, ConfirmResultMsg{Confirmed: tt.want}, cmd())
			assert.False(t, c.Visible())
		})
	}
}

func TestConfirm_IgnoresOtherKeys(t *testing.T) {
	c := NewConfirm(themes.Default)
	c.Ask("Sure?")

	c, cmd := c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.True(t, c.Visible())
}

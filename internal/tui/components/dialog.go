package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
)

// Notice is a blocking message the user has to dismiss. Messages shown
// while one is on screen wait their turn.
type Notice struct {
	theme   themes.Theme
	message string
	queue   []string
	visible bool
}

// NewNotice creates a hidden notice.
func NewNotice(theme themes.Theme) Notice {
	return Notice{theme: theme}
}

// Show displays message, or queues it behind the message on screen.
func (n *Notice) Show(message string) {
	if n.visible {
		n.queue = append(n.queue, message)
		return
	}
	n.message = message
	n.visible = true
}

// Visible reports whether the notice is on screen.
func (n Notice) Visible() bool {
	return n.visible
}

// Message returns the current message.
func (n Notice) Message() string {
	return n.message
}

// Pending returns the number of queued messages.
func (n Notice) Pending() int {
	return len(n.queue)
}

// Update dismisses the current message on enter, esc or space. The next
// queued message takes its place; NoticeDismissedMsg is sent once the
// queue is empty.
func (n Notice) Update(msg tea.Msg) (Notice, tea.Cmd) {
	if !n.visible {
		return n, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return n, nil
	}
	switch key.String() {
	case "enter", "esc", " ":
	default:
		return n, nil
	}

	if len(n.queue) > 0 {
		n.message = n.queue[0]
		n.queue = n.queue[1:]
		return n, nil
	}
	n.visible = false
	n.message = ""
	return n, func() tea.Msg { return NoticeDismissedMsg{} }
}

// View renders the notice box.
func (n Notice) View() string {
	if !n.visible {
		return ""
	}
	hint := lipgloss.NewStyle().Foreground(n.theme.Muted).Render("[Enter] OK")
	return n.theme.RoundedBox.
		BorderForeground(n.theme.Primary).
		Width(60).
		Render(lipgloss.JoinVertical(lipgloss.Left, n.theme.Normal.Render(n.message), "", hint))
}

// Confirm is a yes/no question.
type Confirm struct {
	theme   themes.Theme
	prompt  string
	visible bool
}

// NewConfirm creates a hidden confirmation dialog.
func NewConfirm(theme themes.Theme) Confirm {
	return Confirm{theme: theme}
}

// Ask displays prompt.
func (c *Confirm) Ask(prompt string) {
	c.prompt = prompt
	c.visible = true
}

// Visible reports whether the dialog is on screen.
func (c Confirm) Visible() bool {
	return c.visible
}

// Prompt returns the question being asked.
func (c Confirm) Prompt() string {
	return c.prompt
}

// Update answers the dialog: y or enter confirms, n or esc declines.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	var confirmed bool
	switch key.String() {
	case "y", "Y", "enter":
		confirmed = true
	case "n", "N", "esc":
		confirmed = false
	default:
		return c, nil
	}

	c.visible = false
	c.prompt = ""
	return c, func() tea.Msg { return ConfirmResultMsg{Confirmed: confirmed} }
}

// View renders the dialog.
func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	hint := lipgloss.NewStyle().Foreground(c.theme.Muted).Render("[y] Yes  [n] No")
	return c.theme.RoundedBox.
		BorderForeground(c.theme.Warning).
		Width(60).
		Render(lipgloss.JoinVertical(lipgloss.Left, c.theme.Bold.Render(c.prompt), "", hint))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/components"
)

// cardHeight is the approximate number of lines a suggestion card uses.
const cardHeight = 10

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderMain()
	if m.preview.IsOpen() {
		body = m.renderPreview()
	}
	if m.showHelp {
		body = m.renderHelp()
	}

	switch {
	case m.notice.Visible():
		return m.place(m.notice.View())
	case m.confirm.Visible():
		return m.place(m.confirm.View())
	case m.picker.Visible():
		return m.place(m.picker.View())
	}
	return body
}

// place centers an overlay on the screen.
func (m Model) place(overlay string) string {
	if m.width <= 0 || m.height <= 0 {
		return overlay
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

// renderMain renders the review screen.
func (m Model) renderMain() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	sections := []string{m.theme.Title.Render("Auto-categorization")}

	if m.panels.Visible(components.PanelLoading) {
		sections = append(sections, m.spinner.View()+" Loading analysis...")
	}

	if m.panels.Visible(components.PanelError) {
		sections = append(sections,
			m.theme.StatusError.Render("Could not load the analysis: "+m.panels.Text(components.PanelError)),
			muted.Render("Press r to try again."),
		)
	}

	if m.panels.Visible(components.PanelStatistics) {
		sections = append(sections, m.renderStatistics())
	}

	if m.panels.Visible(components.PanelNoSuggestions) {
		sections = append(sections, m.theme.StatusSuccess.Render(
			"No suggestions found. Every recurring transaction already has a category.",
		))
	}

	lastShown := len(m.cards) - 1
	if m.panels.Visible(components.PanelSuggestions) {
		var cards string
		cards, lastShown = m.renderCards()
		sections = append(sections,
			m.theme.Subtitle.Render(fmt.Sprintf("Suggestions (%d)", len(m.cards))),
			cards,
		)
	}

	if m.panels.Visible(components.PanelPotential) && lastShown == len(m.cards)-1 {
		sections = append(sections,
			m.theme.Subtitle.Render(fmt.Sprintf("Potential patterns (%d)", len(m.potential))),
			m.renderPotential(),
		)
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatistics() string {
	uncategorized := m.theme.StatusWarning.Render(m.panels.Text(components.PanelUncategorized))
	categorized := m.theme.StatusSuccess.Render(m.panels.Text(components.PanelCategorized))
	return fmt.Sprintf("Uncategorized: %s   Categorized: %s", uncategorized, categorized)
}

// renderCards renders the window of cards around the cursor and returns
// the index of the last card shown.
func (m Model) renderCards() (string, int) {
	visible := max(1, (m.height-8)/cardHeight)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.cards))

	width := min(m.width-2, 100)
	rendered := make([]string, 0, end-start+2)
	if start > 0 {
		rendered = append(rendered, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			fmt.Sprintf("  ↑ %d more", start),
		))
	}
	for i := start; i < end; i++ {
		rendered = append(rendered, m.cards[i].View(m.theme, m.config.Formatter, i == m.cursor, width))
	}
	if end < len(m.cards) {
		rendered = append(rendered, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			fmt.Sprintf("  ↓ %d more", len(m.cards)-end),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...), end - 1
}

func (m Model) renderPotential() string {
	width := max(20, min(m.width-2, 100)/2-1)

	var rows []string
	for i := 0; i < len(m.potential); i += 2 {
		left := components.RenderPotentialPattern(m.theme, m.config.Formatter, m.potential[i], width)
		if i+1 < len(m.potential) {
			right := components.RenderPotentialPattern(m.theme, m.config.Formatter, m.potential[i+1], width)
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
			continue
		}
		rows = append(rows, left)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderPreview renders the preview modal with the selector of the
// suggestion it belongs to.
func (m Model) renderPreview() string {
	active, _ := m.slot.Active()

	line := "Category: " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render("none")
	if card := m.card(active.Index); card != nil {
		line = "Category: " + m.theme.Bold.Render(card.Selector.Selected().Label())
	}

	return m.preview.View(line, min(m.width, 120))
}

func (m Model) renderHelp() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Auto-categorization - Help"),
		m.help.FullHelpView(m.keymap.FullHelp()),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help"),
	)
	return m.place(m.theme.BorderedBox.Render(content))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := "Review"
	if busy := m.busyCount(); busy > 0 {
		left = fmt.Sprintf("Review · %d working", busy)
	}

	return strings.Join([]string{
		m.theme.StatusInfo.Render(left),
		m.help.ShortHelpView(m.keymap.ShortHelp()),
	}, "  ")
}

func (m Model) busyCount() int {
	n := 0
	for _, c := range m.cards {
		if c.Control.IsBusy() {
			n++
		}
	}
	return n
}

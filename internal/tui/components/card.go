// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/format"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
)

// Card action labels.
const (
	PreviewLabel    = "Preview all"
	CategorizeLabel = "Categorize"
)

// maxMatchedNames is the number of matched names shown on a card.
const maxMatchedNames = 3

// SuggestionCard is one rendered suggestion with its own selector and
// categorize control.
type SuggestionCard struct {
	Suggestion model.Suggestion
	Selector   categorize.Selector
	Control    categorize.Control
	Index      int
}

// NewSuggestionCard builds the card for the suggestion at index, with the
// selector already seeded from the suggested category.
func NewSuggestionCard(index int, s model.Suggestion, categories model.CategoryList) SuggestionCard {
	return SuggestionCard{
		Index:      index,
		Suggestion: s,
		Selector:   categorize.NewSelector(categories, s.SuggestedCategoryID),
		Control:    categorize.NewControl(CategorizeLabel),
	}
}

// NewSuggestionCards builds one card per suggestion, in order.
func NewSuggestionCards(suggestions []model.Suggestion, categories model.CategoryList) []SuggestionCard {
	cards := make([]SuggestionCard, len(suggestions))
	for i, s := range suggestions {
		cards[i] = NewSuggestionCard(i, s, categories)
	}
	return cards
}

// ModalContext returns the preview context for this card.
func (c SuggestionCard) ModalContext() categorize.ModalContext {
	return categorize.ModalContext{
		Index:        c.Index,
		CategoryName: c.Suggestion.Category,
		Patterns:     c.Suggestion.Patterns,
	}
}

// MatchedNamesLine renders up to three matched names as "name (Nx)".
func (c SuggestionCard) MatchedNamesLine() string {
	top := c.Suggestion.TopMatches(maxMatchedNames)
	parts := make([]string, len(top))
	for i, m := range top {
		parts[i] = fmt.Sprintf("%s (%dx)", m.Name, m.Count)
	}
	return strings.Join(parts, "  ")
}

// View renders the card. focused highlights the border.
func (c SuggestionCard) View(theme themes.Theme, f format.Formatter, focused bool, width int) string {
	muted := lipgloss.NewStyle().Foreground(theme.Muted)

	header := theme.Bold.Render(c.Suggestion.Category)
	patterns := muted.Render("Patterns: " + strings.Join(c.Suggestion.Examples, ", "))
	badges := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(theme.Info).Render(fmt.Sprintf("%s transactions", f.Count(c.Suggestion.TotalTransactions))),
		"  ",
		lipgloss.NewStyle().Foreground(theme.Success).Render(f.Amount(c.Suggestion.TotalAmount)),
	)

	lines := []string{header, patterns, badges}
	if names := c.MatchedNamesLine(); names != "" {
		lines = append(lines, muted.Render("Examples: ")+theme.Normal.Render(names))
	}
	lines = append(lines, "", c.renderSelector(theme), c.renderActions(theme))

	box := theme.RoundedBox.Padding(0, 1)
	if width > 0 {
		box = box.Width(width)
	}
	if focused {
		box = box.BorderForeground(theme.Primary)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (c SuggestionCard) renderSelector(theme themes.Theme) string {
	selected := c.Selector.Selected()
	style := theme.Normal
	if selected.ID == 0 {
		style = lipgloss.NewStyle().Foreground(theme.Muted).Italic(true)
	}
	return "Category: " + lipgloss.NewStyle().Foreground(theme.Primary).Render("◀ ") +
		style.Render(selected.Label()) +
		lipgloss.NewStyle().Foreground(theme.Primary).Render(" ▶")
}

func (c SuggestionCard) renderActions(theme themes.Theme) string {
	return RenderButton(theme, "p", categorize.Button{Label: PreviewLabel, Enabled: true}) +
		"  " + RenderButton(theme, "c", c.Control.Button())
}

// RenderButton renders an action with its shortcut key. Disabled actions
// are dimmed.
func RenderButton(theme themes.Theme, shortcut string, b categorize.Button) string {
	text := fmt.Sprintf("[%s] %s", shortcut, b.Label)
	if !b.Enabled {
		return theme.StatusPending.Render(text)
	}
	return theme.StatusInfo.Render(text)
}

// RenderPotentialPattern renders a display-only potential pattern card.
func RenderPotentialPattern(theme themes.Theme, f format.Formatter, p model.PotentialPattern, width int) string {
	muted := lipgloss.NewStyle().Foreground(theme.Muted)
	lines := []string{
		theme.Bold.Render(p.Name),
		lipgloss.NewStyle().Foreground(theme.Info).Render(fmt.Sprintf("%s transactions", f.Count(p.Count))) +
			"  " + muted.Render("Ø "+f.Amount(p.AverageAmount)),
		muted.Italic(true).Render("Create a category for this manually"),
	}

	box := theme.RoundedBox.Padding(0, 1)
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

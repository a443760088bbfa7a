package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
)

// minSimilarity is the lowest word similarity accepted as a fuzzy match.
const minSimilarity = 0.6

const pickerVisibleItems = 10

// CategoryPicker is a filterable list of categories.
type CategoryPicker struct {
	theme    themes.Theme
	input    textinput.Model
	options  []categorize.Option
	filtered []categorize.Option
	cursor   int
	offset   int
	visible  bool
}

// NewCategoryPicker creates a hidden picker.
func NewCategoryPicker(theme themes.Theme) CategoryPicker {
	input := textinput.New()
	input.Placeholder = "Type to filter categories..."
	input.CharLimit = 50
	_ = input.Cursor.SetMode(cursor.CursorStatic)

	return CategoryPicker{theme: theme, input: input}
}

// Open shows the picker for options. The placeholder option is left out.
func (p *CategoryPicker) Open(options []categorize.Option) tea.Cmd {
	p.options = make([]categorize.Option, 0, len(options))
	for _, o := range options {
		if o.ID != 0 {
			p.options = append(p.options, o)
		}
	}
	p.input.SetValue("")
	p.visible = true
	p.refilter()
	p.input.Focus()
	return textinput.Blink
}

// Close hides the picker.
func (p *CategoryPicker) Close() {
	p.visible = false
	p.input.Blur()
}

// Visible reports whether the picker is on screen.
func (p CategoryPicker) Visible() bool {
	return p.visible
}

// Filtered returns the options matching the current query.
func (p CategoryPicker) Filtered() []categorize.Option {
	return p.filtered
}

// Cursor returns the highlighted position in Filtered.
func (p CategoryPicker) Cursor() int {
	return p.cursor
}

// Update handles navigation and typing.
func (p CategoryPicker) Update(msg tea.Msg) (CategoryPicker, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch key.String() {
	case "esc":
		p.Close()
		return p, func() tea.Msg { return PickerCanceledMsg{} }

	case "enter":
		if len(p.filtered) == 0 {
			return p, nil
		}
		id := p.filtered[p.cursor].ID
		p.Close()
		return p, func() tea.Msg { return CategoryPickedMsg{ID: id} }

	case "down", "ctrl+n":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
		if p.cursor >= p.offset+pickerVisibleItems {
			p.offset = p.cursor - pickerVisibleItems + 1
		}
		return p, nil

	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		if p.cursor < p.offset {
			p.offset = p.cursor
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return p, cmd
}

func (p *CategoryPicker) refilter() {
	p.filtered = FilterOptions(p.options, p.input.Value())
	p.cursor = 0
	p.offset = 0
}

// View renders the picker.
func (p CategoryPicker) View() string {
	if !p.visible {
		return ""
	}

	lines := []string{
		p.theme.Subtitle.Render("Choose category"),
		p.input.View(),
		"",
	}

	if len(p.filtered) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.theme.Muted).Render("No matching categories"))
	}

	end := min(p.offset+pickerVisibleItems, len(p.filtered))
	for i := p.offset; i < end; i++ {
		line := "  " + p.filtered[i].Label()
		if i == p.cursor {
			line = p.theme.Selected.Render("> " + p.filtered[i].Label())
		}
		lines = append(lines, line)
	}
	if end < len(p.filtered) {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.theme.Muted).Render(
			fmt.Sprintf("  ↓ %d more", len(p.filtered)-end),
		))
	}

	lines = append(lines, "", lipgloss.NewStyle().Foreground(p.theme.Muted).Render("[↑↓] Navigate  [Enter] Select  [Esc] Cancel"))

	return p.theme.RoundedBox.
		BorderForeground(p.theme.Primary).
		Width(50).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// FilterOptions returns the options whose name matches query. Substring
// matches come first, then fuzzy word matches by decreasing similarity;
// ties keep their original order. An empty query matches everything.
func FilterOptions(options []categorize.Option, query string) []categorize.Option {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]categorize.Option(nil), options...)
	}

	type scored struct {
		option categorize.Option
		score  float64
	}

	var matches []scored
	for _, o := range options {
		name := strings.ToLower(o.Name)
		if strings.Contains(name, query) {
			matches = append(matches, scored{option: o, score: 2})
			continue
		}
		if s := bestWordSimilarity(name, query); s >= minSimilarity {
			matches = append(matches, scored{option: o, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]categorize.Option, len(matches))
	for i, m := range matches {
		result[i] = m.option
	}
	return result
}

func bestWordSimilarity(name, query string) float64 {
	best := 0.0
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '/' || r == '-' || r == '&'
	})
	for _, w := range words {
		longest := max(len([]rune(w)), len([]rune(query)))
		if longest == 0 {
			continue
		}
		s := 1 - float64(levenshtein.ComputeDistance(w, query))/float64(longest)
		if s > best {
			best = s
		}
	}
	return best
}

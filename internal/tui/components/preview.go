package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/format"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
)

// PreviewNameLimit is the longest transaction name shown untruncated.
const PreviewNameLimit = 50

const previewVisibleRows = 12

// PreviewModal shows the transactions matched by one suggestion and the
// checkbox selection used for a filtered commit.
type PreviewModal struct {
	theme     themes.Theme
	formatter format.Formatter
	panels    Panels
	selection categorize.Selection
	spinner   spinner.Model
	cursor    int
	offset    int
	open      bool
}

// NewPreviewModal creates a closed modal.
func NewPreviewModal(theme themes.Theme, f format.Formatter) PreviewModal {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return PreviewModal{
		theme:     theme,
		formatter: f,
		spinner:   s,
		panels: NewPanels(
			PanelPreviewTitle,
			PanelPreviewLoading,
			PanelPreviewCount,
			PanelPreviewControls,
			PanelPreviewTransactions,
			PanelPreviewEmpty,
		),
	}
}

// Open resets every section to the loading state and shows the modal.
func (m *PreviewModal) Open(categoryName string) tea.Cmd {
	m.open = true
	m.cursor = 0
	m.offset = 0
	m.selection = categorize.NewSelection(nil)

	m.panels.SetText(PanelPreviewTitle, "Preview: "+categoryName)
	m.panels.SetText(PanelPreviewCount, "")
	m.panels.Show(PanelPreviewLoading)
	m.panels.Hide(PanelPreviewControls)
	m.panels.Hide(PanelPreviewTransactions)
	m.panels.Hide(PanelPreviewEmpty)

	return m.spinner.Tick
}

// Close hides the modal.
func (m *PreviewModal) Close() {
	m.open = false
}

// IsOpen reports whether the modal is on screen.
func (m PreviewModal) IsOpen() bool {
	return m.open
}

// ShowTransactions fills the modal from a successful preview. An empty
// result shows the empty state with the selection controls hidden.
func (m *PreviewModal) ShowTransactions(resp *model.PreviewResponse) {
	m.panels.Hide(PanelPreviewLoading)

	if resp == nil || len(resp.Transactions) == 0 {
		m.panels.Show(PanelPreviewEmpty)
		return
	}

	m.panels.SetText(PanelPreviewCount, m.formatter.Count(resp.Count))
	m.panels.Show(PanelPreviewControls)
	m.selection = categorize.NewSelection(resp.Transactions)
	m.panels.Show(PanelPreviewTransactions)
}

// ShowEmpty shows the empty state, used when the preview failed.
func (m *PreviewModal) ShowEmpty() {
	m.panels.Hide(PanelPreviewLoading)
	m.panels.Show(PanelPreviewEmpty)
}

// Panels returns the section visibility of the modal.
func (m PreviewModal) Panels() Panels {
	return m.panels
}

// Selection returns the checkbox state.
func (m PreviewModal) Selection() categorize.Selection {
	return m.selection
}

// Cursor returns the highlighted row.
func (m PreviewModal) Cursor() int {
	return m.cursor
}

// Update handles row navigation and the selection controls.
func (m PreviewModal) Update(msg tea.Msg) (PreviewModal, tea.Cmd) {
	if !m.open {
		return m, nil
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.panels.Visible(PanelPreviewLoading) {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		rows := m.selection.Len()
		switch msg.String() {
		case "j", "down":
			if m.cursor < rows-1 {
				m.cursor++
			}
			if m.cursor >= m.offset+previewVisibleRows {
				m.offset = m.cursor - previewVisibleRows + 1
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		case " ", "x":
			m.selection.Toggle(m.cursor)
		case "a":
			m.selection.SelectAll()
		case "n":
			m.selection.SelectNone()
		case "t":
			m.selection.ToggleAll()
		}
	}

	return m, nil
}

// View renders the modal. categoryLine describes the category the
// filtered commit will assign.
func (m PreviewModal) View(categoryLine string, width int) string {
	if !m.open {
		return ""
	}
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	sections := []string{m.theme.Title.Render(m.panels.Text(PanelPreviewTitle))}

	if m.panels.Visible(PanelPreviewLoading) {
		sections = append(sections, m.spinner.View()+" Loading transactions...")
	}

	if m.panels.Visible(PanelPreviewControls) {
		sections = append(sections,
			fmt.Sprintf("%s transactions found", m.panels.Text(PanelPreviewCount)),
			checkbox(m.selection.AllChecked())+" Select all    "+
				muted.Render("[a] All  [n] None  [t] Toggle all  [space] Toggle row"),
		)
	}

	if m.panels.Visible(PanelPreviewTransactions) {
		sections = append(sections, m.renderRows())
	}

	if m.panels.Visible(PanelPreviewEmpty) {
		sections = append(sections, muted.Render("No transactions found for these patterns"))
	}

	sections = append(sections,
		"",
		categoryLine,
		RenderButton(m.theme, "enter", m.selection.CommitButton())+"  "+muted.Render("[←→] Category  [Esc] Close"),
	)

	box := m.theme.BorderedBox.BorderForeground(m.theme.Primary)
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m PreviewModal) renderRows() string {
	rows := m.selection.Rows()
	end := min(m.offset+previewVisibleRows, len(rows))

	lines := make([]string, 0, end-m.offset+2)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, rows[i]))
	}
	if end < len(rows) {
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(
			fmt.Sprintf("  ↓ %d more", len(rows)-end),
		))
	}

	if m.cursor < len(rows) {
		full := rows[m.cursor].Transaction
		detail := full.Name
		if full.Notes != "" {
			detail += " · " + full.Notes
		}
		lines = append(lines, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render(detail))
	}
	return strings.Join(lines, "\n")
}

func (m PreviewModal) renderRow(i int, row categorize.Row) string {
	t := row.Transaction

	amount := t.AmountFormatted
	if amount == "" {
		amount = m.formatter.Amount(t.Amount)
	}
	amountStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
	if t.IsCredit() {
		amountStyle = lipgloss.NewStyle().Foreground(m.theme.Success)
	}

	line := fmt.Sprintf("%s %-10s  %-50s  %s  %s",
		checkbox(row.Checked),
		t.Date,
		format.Truncate(t.Name, PreviewNameLimit),
		amountStyle.Render(fmt.Sprintf("%12s", amount)),
		m.theme.Code.Render(t.Code),
	)
	if i == m.cursor {
		return m.theme.Highlighted.Render(line)
	}
	return line
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

package categorize

import (
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Commit button labels.
const (
	CommitLabelEmpty = "Categorize selected"
	commitLabelCount = "Categorize %d selected"
)

// Button is the rendered state of an action control.
type Button struct {
	Label   string
	Enabled bool
}

// Row is one preview transaction with its inclusion flag.
type Row struct {
	Transaction model.PreviewTransaction
	Checked     bool
}

// Selection is the checkbox state of the preview modal. The select-all
// checkbox and the commit button are recomputed after every change.
type Selection struct {
	rows      []Row
	allChosen bool
	button    Button
}

// NewSelection creates a selection with every transaction checked.
func NewSelection(transactions []model.PreviewTransaction) Selection {
	rows := make([]Row, len(transactions))
	for i, t := range transactions {
		rows[i] = Row{Transaction: t, Checked: true}
	}
	s := Selection{rows: rows}
	s.recompute()
	return s
}

// Rows returns the rows in display order.
func (s Selection) Rows() []Row {
	return s.rows
}

// Len returns the number of rows.
func (s Selection) Len() int {
	return len(s.rows)
}

// Count returns the number of checked rows.
func (s Selection) Count() int {
	n := 0
	for _, r := range s.rows {
		if r.Checked {
			n++
		}
	}
	return n
}

// AllChecked is the state of the select-all checkbox.
func (s Selection) AllChecked() bool {
	return s.allChosen
}

// CommitButton returns the state of the commit button.
func (s Selection) CommitButton() Button {
	return s.button
}

// SelectedIDs returns the ids of checked rows in display order.
func (s Selection) SelectedIDs() []int {
	ids := make([]int, 0, len(s.rows))
	for _, r := range s.rows {
		if r.Checked {
			ids = append(ids, r.Transaction.ID)
		}
	}
	return ids
}

// Toggle flips row i. Out of range indexes are ignored.
func (s *Selection) Toggle(i int) {
	if i < 0 || i >= len(s.rows) {
		return
	}
	s.rows[i].Checked = !s.rows[i].Checked
	s.recompute()
}

// SelectAll checks every row.
func (s *Selection) SelectAll() {
	s.setAll(true)
}

// SelectNone unchecks every row.
func (s *Selection) SelectNone() {
	s.setAll(false)
}

// ToggleAll flips the select-all checkbox and applies its new state to
// every row.
func (s *Selection) ToggleAll() {
	s.setAll(!s.allChosen)
}

func (s *Selection) setAll(checked bool) {
	for i := range s.rows {
		s.rows[i].Checked = checked
	}
	s.recompute()
}

func (s *Selection) recompute() {
	n := s.Count()
	s.allChosen = n > 0 && n == len(s.rows)
	s.button = CommitButtonFor(n)
}

// CommitButtonFor returns the commit button state for n selected rows.
func CommitButtonFor(n int) Button {
	if n <= 0 {
		return Button{Label: CommitLabelEmpty, Enabled: false}
	}
	return Button{Label: fmt.Sprintf(commitLabelCount, n), Enabled: true}
}

// Package categorize holds the rules of the auto-categorization review
// workflow: category selectors, preview selection, the single preview
// context and commit validation. It has no UI or transport dependencies.
package categorize

import (
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// PlaceholderLabel is the label of the empty selector option.
const PlaceholderLabel = "Choose category..."

// RecommendedSuffix marks the backend-suggested option.
const RecommendedSuffix = " (recommended)"

// Option is one entry of a category selector. ID 0 is the placeholder.
type Option struct {
	Name        string
	ID          int
	Recommended bool
}

// Label is the display text of the option.
func (o Option) Label() string {
	if o.ID == 0 {
		return PlaceholderLabel
	}
	if o.Recommended {
		return o.Name + RecommendedSuffix
	}
	return o.Name
}

// Selector is the category choice attached to one suggestion.
type Selector struct {
	options  []Option
	selected int
}

// NewSelector builds the options for a suggestion: the placeholder, then the
// suggested category (pre-selected) if any, then every other category in
// the given order.
func NewSelector(categories model.CategoryList, suggestedID *int) Selector {
	options := make([]Option, 0, len(categories)+2)
	options = append(options, Option{})

	s := Selector{}
	if suggestedID != nil && *suggestedID != 0 {
		name, ok := categories.Name(*suggestedID)
		if !ok {
			name = fmt.Sprintf("Category %d", *suggestedID)
		}
		options = append(options, Option{ID: *suggestedID, Name: name, Recommended: true})
		s.selected = 1
	}

	for _, c := range categories {
		if suggestedID != nil && c.ID == *suggestedID {
			continue
		}
		options = append(options, Option{ID: c.ID, Name: c.Name})
	}

	s.options = options
	return s
}

// Options returns the options in display order.
func (s Selector) Options() []Option {
	return s.options
}

// Index returns the position of the selected option.
func (s Selector) Index() int {
	return s.selected
}

// Value returns the selected category id, 0 when nothing is chosen.
func (s Selector) Value() int {
	if s.selected < 0 || s.selected >= len(s.options) {
		return 0
	}
	return s.options[s.selected].ID
}

// IsChosen reports whether a real category is selected.
func (s Selector) IsChosen() bool {
	return s.Value() != 0
}

// Selected returns the selected option.
func (s Selector) Selected() Option {
	if s.selected < 0 || s.selected >= len(s.options) {
		return Option{}
	}
	return s.options[s.selected]
}

// SelectedName returns the category name of the selection, without the
// recommended marker.
func (s Selector) SelectedName() string {
	return s.Selected().Name
}

// Next moves the selection forward, wrapping around.
func (s *Selector) Next() {
	if len(s.options) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.options)
}

// Prev moves the selection backward, wrapping around.
func (s *Selector) Prev() {
	if len(s.options) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.options)) % len(s.options)
}

// SelectID selects the option with the given id. It returns false and keeps
// the current selection when no option has that id.
func (s *Selector) SelectID(id int) bool {
	for i, o := range s.options {
		if o.ID == id {
			s.selected = i
			return true
		}
	}
	return false
}

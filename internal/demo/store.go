// Package demo is an in-memory stand-in for the categorization backend,
// used by autocat-demo and by end-to-end tests.
package demo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Validation errors returned by the store.
var (
	ErrPatternsRequired            = errors.New("patterns are required")
	ErrPatternsAndCategoryRequired = errors.New("patterns and categorie_id are required")
)

const (
	maxMatchedNames   = 10
	maxExamples       = 3
	potentialScanSize = 20
	potentialMinCount = 10
)

// patternGroup is a built-in suggestion rule. keywords select the existing
// category it is linked to.
type patternGroup struct {
	category string
	patterns []string
	keywords []string
}

var patternGroups = []patternGroup{
	{
		category: "Boodschappen",
		patterns: []string{"DEKAMARKT", "ALBERT HEIJN", "JUMBO", "LIDL", "ALDI", "PLUS", "COOP", "SPAR", "VOMAR", "DIRK", "PICNIC", "BONI"},
		keywords: []string{"boodschap", "supermarkt"},
	},
	{
		category: "Auto/Transport",
		patterns: []string{"SHELL", "BP", "ESSO", "TEXACO", "TOTAL", "TANGO", "GULF", "Q8", "TINQ", "FASTNED", "ALLEGO"},
		keywords: []string{"auto", "benzine", "transport"},
	},
	{
		category: "Restaurants/Eten",
		patterns: []string{"MCDONALDS", "BURGER KING", "KFC", "SUBWAY", "DOMINOS", "NEW YORK PIZZA", "CAFE ", "RESTAURANT", "BISTRO", "BRASSERIE"},
		keywords: []string{"restaurant", "eten", "horeca"},
	},
	{
		category: "Parkeren",
		patterns: []string{"PARKEREN", "Q-PARK", "APCOA", "EUROPARKING", "P+R"},
	},
}

// Persister records assignments durably. AssignCategory must only touch
// uncategorized transactions among ids.
type Persister interface {
	AssignCategory(ctx context.Context, ids []int, categoryID int) (int, error)
}

// Store holds categories and transactions. It is safe for concurrent use.
type Store struct {
	persister    Persister
	categories   model.CategoryList
	transactions []model.Transaction
	mu           sync.RWMutex
}

// NewStore creates a store. Categories are kept sorted by name.
func NewStore(categories model.CategoryList, transactions []model.Transaction) *Store {
	cats := append(model.CategoryList(nil), categories...)
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})
	return &Store{
		categories:   cats,
		transactions: append([]model.Transaction(nil), transactions...),
	}
}

type nameStats struct {
	name    string
	count   int
	average float64
}

// uncategorizedNames groups the uncategorized transactions by name, most
// frequent first.
func (s *Store) uncategorizedNames() []nameStats {
	index := make(map[string]int)
	var stats []nameStats
	for _, t := range s.transactions {
		if t.CategoryID != 0 {
			continue
		}
		i, ok := index[t.Name]
		if !ok {
			i = len(stats)
			index[t.Name] = i
			stats = append(stats, nameStats{name: t.Name})
		}
		st := &stats[i]
		st.average = (st.average*float64(st.count) + t.Amount) / float64(st.count+1)
		st.count++
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].name < stats[j].name
	})
	return stats
}

func (s *Store) linkedCategory(keywords []string) *int {
	var linked *int
	for _, c := range s.categories {
		name := strings.ToLower(c.Name)
		for _, k := range keywords {
			if strings.Contains(name, k) {
				id := c.ID
				linked = &id
				break
			}
		}
	}
	return linked
}

// Analysis computes the categorization analysis of the current data.
func (s *Store) Analysis() model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.uncategorizedNames()
	matched := make(map[string]bool)

	suggestions := make([]model.Suggestion, 0, len(patternGroups))
	for _, g := range patternGroups {
		sg := model.Suggestion{
			Category: g.category,
			Patterns: g.patterns,
			Examples: g.patterns[:min(maxExamples, len(g.patterns))],
		}
		if len(g.keywords) > 0 {
			sg.SuggestedCategoryID = s.linkedCategory(g.keywords)
		}

		for _, n := range names {
			if !common.MatchesAnyPattern(n.name, g.patterns) {
				continue
			}
			sg.TotalTransactions += n.count
			sg.TotalAmount += n.average * float64(n.count)
			sg.MatchedNames = append(sg.MatchedNames, model.MatchedName{Name: n.name, Count: n.count, Average: n.average})
		}
		if sg.TotalTransactions == 0 {
			continue
		}
		if len(sg.MatchedNames) > maxMatchedNames {
			sg.MatchedNames = sg.MatchedNames[:maxMatchedNames]
		}
		for _, m := range sg.MatchedNames {
			matched[m.Name] = true
		}
		suggestions = append(suggestions, sg)
	}

	potential := make([]model.PotentialPattern, 0)
	for _, n := range names[:min(potentialScanSize, len(names))] {
		if n.count < potentialMinCount || matched[n.name] {
			continue
		}
		potential = append(potential, model.PotentialPattern{Name: n.name, Count: n.count, AverageAmount: n.average})
	}

	var uncategorized, categorized int
	for _, t := range s.transactions {
		if t.CategoryID == 0 {
			uncategorized++
		} else {
			categorized++
		}
	}

	return model.Analysis{
		Uncategorized: uncategorized,
		Categorized:   categorized,
		Suggestions:   suggestions,
		Potential:     potential,
		Categories:    append(model.CategoryList(nil), s.categories...),
	}
}

// Preview returns the uncategorized transactions matching any pattern,
// newest first.
func (s *Store) Preview(patterns []string) (model.PreviewResponse, error) {
	if len(patterns) == 0 {
		return model.PreviewResponse{}, ErrPatternsRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.PreviewTransaction, 0)
	for _, t := range s.transactions {
		if t.CategoryID != 0 || !common.MatchesAnyPattern(t.Name, patterns) {
			continue
		}
		matches = append(matches, model.PreviewTransaction{
			ID:              t.ID,
			Date:            t.Date,
			Name:            t.Name,
			Amount:          t.Amount,
			AmountFormatted: formatAmount(t.Amount),
			Code:            t.Code,
			Notes:           t.Notes,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date > matches[j].Date
	})

	return model.PreviewResponse{Transactions: matches, Count: len(matches)}, nil
}

// Assign categorizes transactions. With TransactionIDs only those
// uncategorized transactions are updated; otherwise every uncategorized
// transaction matching the patterns is. A persister, when set, is written
// first and the in-memory data only changes when it succeeds.
func (s *Store) Assign(ctx context.Context, req model.BulkAssignRequest) (model.BulkAssignResponse, error) {
	if len(req.Patterns) == 0 || req.CategoryID == 0 {
		return model.BulkAssignResponse{}, ErrPatternsAndCategoryRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[int]bool, len(req.TransactionIDs))
	for _, id := range req.TransactionIDs {
		ids[id] = true
	}

	var targets []int
	for i, t := range s.transactions {
		if t.IsCategorized() {
			continue
		}
		if req.IsFiltered() {
			if !ids[t.ID] {
				continue
			}
		} else if !common.MatchesAnyPattern(t.Name, req.Patterns) {
			continue
		}
		targets = append(targets, i)
	}

	if s.persister != nil && len(targets) > 0 {
		persistIDs := make([]int, len(targets))
		for i, idx := range targets {
			persistIDs[i] = s.transactions[idx].ID
		}
		if _, err := s.persister.AssignCategory(ctx, persistIDs, req.CategoryID); err != nil {
			return model.BulkAssignResponse{}, fmt.Errorf("failed to persist assignment: %w", err)
		}
	}

	for _, idx := range targets {
		s.transactions[idx].CategoryID = req.CategoryID
	}

	return model.BulkAssignResponse{
		Updated: len(targets),
		Message: fmt.Sprintf("%d transacties toegewezen aan %q", len(targets), req.CategoryName),
	}, nil
}

// Transaction returns the stored transaction with id.
func (s *Store) Transaction(id int) (model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

func formatAmount(amount float64) string {
	if amount >= 0 {
		return fmt.Sprintf("€%.2f", amount)
	}
	return fmt.Sprintf("-€%.2f", -amount)
}

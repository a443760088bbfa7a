package demo

import (
	"context"
	"sync"
	"testing"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionByCategory(t *testing.T, a model.Analysis, category string) model.Suggestion {
	t.Helper()
	for _, s := range a.Suggestions {
		if s.Category == category {
			return s
		}
	}
	require.Failf(t, "suggestion not found", "category %q", category)
	return model.Suggestion{}
}

func TestStore_Analysis(t *testing.T) {
	a := NewSampleStore().Analysis()

	assert.Equal(t, 75, a.Uncategorized)
	assert.Equal(t, 17, a.Categorized)

	names := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Abonnementen", "Auto/Transport", "Boodschappen", "Restaurants/Eten", "Wonen"}, names)

	var categories []string
	for _, s := range a.Suggestions {
		categories = append(categories, s.Category)
	}
	assert.Equal(t, []string{"Boodschappen", "Auto/Transport", "Restaurants/Eten", "Parkeren"}, categories)

	groceries := suggestionByCategory(t, a, "Boodschappen")
	require.NotNil(t, groceries.SuggestedCategoryID)
	assert.Equal(t, CategoryBoodschappen, *groceries.SuggestedCategoryID)
	assert.Equal(t, 29, groceries.TotalTransactions)
	assert.Equal(t, []string{"DEKAMARKT", "ALBERT HEIJN", "JUMBO"}, groceries.Examples)
	require.NotEmpty(t, groceries.MatchedNames)
	assert.Equal(t, "ALBERT HEIJN 1403 AMSTERDAM", groceries.MatchedNames[0].Name)
	assert.Equal(t, 14, groceries.MatchedNames[0].Count)

	parking := suggestionByCategory(t, a, "Parkeren")
	assert.Nil(t, parking.SuggestedCategoryID)
	assert.Equal(t, 4, parking.TotalTransactions)

	require.Len(t, a.Potential, 2)
	assert.Equal(t, "BOL.COM", a.Potential[0].Name)
	assert.Equal(t, 12, a.Potential[0].Count)
	assert.Equal(t, "NS GROEP IZ NS REIZIGERS", a.Potential[1].Name)
}

func TestStore_Preview(t *testing.T) {
	s := NewSampleStore()

	resp, err := s.Preview([]string{"jumbo", "lidl"})
	require.NoError(t, err)
	assert.Equal(t, 11, resp.Count)
	require.Len(t, resp.Transactions, 11)

	for i := 1; i < len(resp.Transactions); i++ {
		assert.GreaterOrEqual(t, resp.Transactions[i-1].Date, resp.Transactions[i].Date, "newest first")
	}
	first := resp.Transactions[0]
	assert.Contains(t, []string{"JUMBO AMSTERDAM OOST", "LIDL ZAANDAM"}, first.Name)
	assert.Equal(t, formatAmount(first.Amount), first.AmountFormatted)

	_, err = s.Preview(nil)
	assert.ErrorIs(t, err, ErrPatternsRequired)
}

func TestStore_PreviewWholeWords(t *testing.T) {
	s := NewStore(nil, []model.Transaction{
		{ID: 1, Name: "SHELL A10"},
		{ID: 2, Name: "SHELLFISH MARKET"},
		{ID: 3, Name: "shell express"},
		{ID: 4, Name: "SHELL CATEGORIZED", CategoryID: 9},
	})

	resp, err := s.Preview([]string{"SHELL"})
	require.NoError(t, err)

	var ids []int
	for _, tx := range resp.Transactions {
		ids = append(ids, tx.ID)
	}
	assert.ElementsMatch(t, []int{1, 3}, ids)
}

func TestStore_Assign(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		req     model.BulkAssignRequest
		want    int
	}{
		{
			name: "whole group",
			req:  model.BulkAssignRequest{Patterns: []string{"SHELL", "TINQ"}, CategoryID: CategoryAuto, CategoryName: "Auto/Transport"},
			want: 8,
		},
		{
			name: "selected ids only",
			req:  model.BulkAssignRequest{Patterns: []string{"SHELL"}, CategoryID: CategoryAuto, TransactionIDs: []int{32, 33}},
			want: 2,
		},
		{
			name: "already categorized ids are skipped",
			req:  model.BulkAssignRequest{Patterns: []string{"NETFLIX"}, CategoryID: CategoryAbonnementen, TransactionIDs: []int{87}},
			want: 0,
		},
		{
			name:    "missing category",
			req:     model.BulkAssignRequest{Patterns: []string{"SHELL"}},
			wantErr: ErrPatternsAndCategoryRequired,
		},
		{
			name:    "missing patterns",
			req:     model.BulkAssignRequest{CategoryID: CategoryAuto},
			wantErr: ErrPatternsAndCategoryRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampleStore()
			resp, err := s.Assign(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Updated)
		})
	}
}

func TestStore_AssignRemovesSuggestion(t *testing.T) {
	s := NewSampleStore()
	before := s.Analysis()

	resp, err := s.Assign(context.Background(), model.BulkAssignRequest{
		Patterns:     suggestionByCategory(t, before, "Parkeren").Patterns,
		CategoryID:   CategoryAuto,
		CategoryName: "Auto/Transport",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Updated)
	assert.Equal(t, `4 transacties toegewezen aan "Auto/Transport"`, resp.Message)

	after := s.Analysis()
	assert.Equal(t, before.Uncategorized-4, after.Uncategorized)
	assert.Equal(t, before.Categorized+4, after.Categorized)
	assert.Len(t, after.Suggestions, len(before.Suggestions)-1)

	again, err := s.Assign(context.Background(), model.BulkAssignRequest{Patterns: []string{"Q-PARK"}, CategoryID: CategoryAuto})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Updated)
}

func TestStore_ConcurrentAssign(t *testing.T) {
	s := NewSampleStore()

	var wg sync.WaitGroup
	results := make([]int, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := s.Assign(context.Background(), model.BulkAssignRequest{Patterns: []string{"ALBERT HEIJN"}, CategoryID: CategoryBoodschappen})
			if err == nil {
				results[i] = resp.Updated
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, n := range results {
		total += n
	}
	assert.Equal(t, 14, total, "each transaction is assigned exactly once")
}

func TestSampleTransactions_Deterministic(t *testing.T) {
	assert.Equal(t, SampleTransactions(), SampleTransactions())

	tx, ok := NewSampleStore().Transaction(1)
	require.True(t, ok)
	assert.Equal(t, "ALBERT HEIJN 1403 AMSTERDAM", tx.Name)
	assert.Equal(t, "2024-01-02", tx.Date)
}

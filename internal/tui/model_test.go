package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/components"
	tuitesting "github.com/keessnoek/ing-transactie-verwerker/internal/tui/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	analysisErr   error
	previewErr    error
	assignErr     error
	analysis      *model.Analysis
	preview       *model.PreviewResponse
	assign        *model.BulkAssignResponse
	previewed     [][]string
	assigned      []model.BulkAssignRequest
	analysisCalls int
}

func (f *fakeBackend) Analysis(context.Context) (*model.Analysis, error) {
	f.analysisCalls++
	if f.analysisErr != nil {
		return nil, f.analysisErr
	}
	return f.analysis, nil
}

func (f *fakeBackend) PreviewTransactions(_ context.Context, patterns []string) (*model.PreviewResponse, error) {
	f.previewed = append(f.previewed, patterns)
	if f.previewErr != nil {
		return nil, f.previewErr
	}
	return f.preview, nil
}

func (f *fakeBackend) BulkAssign(_ context.Context, req model.BulkAssignRequest) (*model.BulkAssignResponse, error) {
	f.assigned = append(f.assigned, req)
	if f.assignErr != nil {
		return nil, f.assignErr
	}
	return f.assign, nil
}

func intPtr(i int) *int { return &i }

func testAnalysis() *model.Analysis {
	return &model.Analysis{
		Uncategorized: 1234,
		Categorized:   56,
		Categories: model.CategoryList{
			{ID: 1, Name: "Boodschappen"},
			{ID: 3, Name: "Restaurants/Eten"},
			{ID: 5, Name: "Auto/Transport"},
		},
		Suggestions: []model.Suggestion{
			{
				Category:            "Restaurants/Eten",
				SuggestedCategoryID: intPtr(3),
				Patterns:            []string{"MCDONALDS", "DOMINOS"},
				Examples:            []string{"MCDONALDS", "DOMINOS"},
				MatchedNames: []model.MatchedName{
					{Name: "MCDONALDS AMSTERDAM", Count: 8, Average: -9.5},
					{Name: "DOMINOS PIZZA", Count: 4, Average: -20.1},
				},
				TotalTransactions: 12,
				TotalAmount:       -156.4,
			},
			{
				Category:          "Tanken",
				Patterns:          []string{"SHELL"},
				Examples:          []string{"SHELL"},
				TotalTransactions: 3,
				TotalAmount:       -180,
			},
		},
		Potential: []model.PotentialPattern{
			{Name: "BOL.COM", Count: 5, AverageAmount: -34.99},
		},
	}
}

func testPreview() *model.PreviewResponse {
	return &model.PreviewResponse{
		Count: 2,
		Transactions: []model.PreviewTransaction{
			{ID: 11, Date: "2024-03-01", Name: "MCDONALDS AMSTERDAM", Amount: -9.5, AmountFormatted: "-€9,50", Code: "BA"},
			{ID: 12, Date: "2024-03-04", Name: "DOMINOS PIZZA", Amount: -20.1, AmountFormatted: "-€20,10", Code: "BA"},
		},
	}
}

func newTestModel(backend *fakeBackend) Model {
	app, err := New(backend, WithReloadDelay(time.Millisecond), WithSize(120, 40))
	if err != nil {
		panic(err)
	}
	return app.Model()
}

// load runs Init and settles the analysis load.
func load(t *testing.T, backend *fakeBackend) (Model, *tuitesting.TestRenderer) {
	t.Helper()
	r := tuitesting.NewTestRenderer()
	m := newTestModel(backend)
	settled := r.Settle(m, m.Init())
	return asModel(t, settled), r
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	require.True(t, ok, "unexpected model type %T", tm)
	return m
}

func send(t *testing.T, r *tuitesting.TestRenderer, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	return asModel(t, r.Send(m, msgs...))
}

func TestNew_RequiresBackend(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestModel_StartsLoading(t *testing.T) {
	m := newTestModel(&fakeBackend{analysis: testAnalysis()})

	assert.True(t, m.panels.Visible(components.PanelLoading))
	assert.False(t, m.panels.Visible(components.PanelStatistics))
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Loading analysis")
}

func TestModel_AnalysisLoaded(t *testing.T) {
	backend := &fakeBackend{analysis: testAnalysis()}
	m, _ := load(t, backend)

	assert.Equal(t, 1, backend.analysisCalls)
	assert.False(t, m.panels.Visible(components.PanelLoading))
	assert.True(t, m.panels.Visible(components.PanelStatistics))
	assert.Equal(t, "1.234", m.panels.Text(components.PanelUncategorized))
	assert.Equal(t, "56", m.panels.Text(components.PanelCategorized))
	assert.True(t, m.panels.Visible(components.PanelSuggestions))
	assert.True(t, m.panels.Visible(components.PanelPotential))
	assert.False(t, m.panels.Visible(components.PanelNoSuggestions))
	assert.False(t, m.panels.Visible(components.PanelError))

	require.Len(t, m.cards, 2)
	opts := m.cards[0].Selector.Options()
	assert.Equal(t, 3, opts[1].ID)
	assert.True(t, opts[1].Recommended)
	assert.Equal(t, 3, m.cards[0].Selector.Value())
	assert.Equal(t, 0, m.cards[1].Selector.Value())

	view := tuitesting.StripANSI(m.View())
	assert.True(t, tuitesting.ContainsInOrder(view,
		"Uncategorized: 1.234",
		"Restaurants/Eten",
		"Patterns: MCDONALDS, DOMINOS",
		"-€156,40",
		"MCDONALDS AMSTERDAM (8x)",
		"Restaurants/Eten (recommended)",
	))
}

func TestModel_EmptyAnalysis(t *testing.T) {
	backend := &fakeBackend{analysis: &model.Analysis{
		Categories: model.CategoryList{{ID: 1, Name: "Boodschappen"}},
	}}
	m, _ := load(t, backend)

	assert.True(t, m.panels.Visible(components.PanelNoSuggestions))
	assert.True(t, m.panels.Visible(components.PanelStatistics))
	assert.False(t, m.panels.Visible(components.PanelSuggestions))
	assert.False(t, m.panels.Visible(components.PanelPotential))
	assert.Empty(t, m.cards)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "No suggestions found")
}

func TestModel_AnalysisFailure(t *testing.T) {
	backend := &fakeBackend{analysisErr: errors.New("HTTP error! status: 500")}
	m, _ := load(t, backend)

	assert.False(t, m.panels.Visible(components.PanelLoading))
	assert.True(t, m.panels.Visible(components.PanelError))
	assert.False(t, m.panels.Visible(components.PanelStatistics))
	assert.Empty(t, m.cards)
	require.True(t, m.notice.Visible())
	assert.Equal(t, "An error occurred: HTTP error! status: 500", m.notice.Message())
}

func TestModel_StaleAnalysisIgnored(t *testing.T) {
	m, _ := load(t, &fakeBackend{analysis: testAnalysis()})

	next, _ := m.update(analysisLoadedMsg{gen: m.gen - 1, err: errors.New("old")})
	assert.False(t, next.panels.Visible(components.PanelError))
	assert.Len(t, next.cards, 2)
}

func TestModel_SelectorNavigation(t *testing.T) {
	m, r := load(t, &fakeBackend{analysis: testAnalysis()})

	m = send(t, r, m, tuitesting.KeyRight())
	assert.Equal(t, 1, m.cards[0].Selector.Value())

	m = send(t, r, m, tuitesting.KeyDown(), tuitesting.KeyLeft())
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, 5, m.cards[1].Selector.Value(), "left wraps to the last option")
}

func TestModel_CategoryPicker(t *testing.T) {
	m, r := load(t, &fakeBackend{analysis: testAnalysis()})

	m = send(t, r, m, tuitesting.KeyDown(), tuitesting.KeyPress("/"))
	require.True(t, m.picker.Visible())

	for _, msg := range tuitesting.Type("auto") {
		m = send(t, r, m, msg)
	}
	require.NotEmpty(t, m.picker.Filtered())
	assert.Equal(t, "Auto/Transport", m.picker.Filtered()[0].Name)

	m = send(t, r, m, tuitesting.KeyEnter())
	assert.False(t, m.picker.Visible())
	assert.Equal(t, 5, m.cards[1].Selector.Value())
}

func TestModel_PreviewWithTransactions(t *testing.T) {
	backend := &fakeBackend{analysis: testAnalysis(), preview: testPreview()}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("p"))

	require.True(t, m.preview.IsOpen())
	require.Len(t, backend.previewed, 1)
	assert.Equal(t, []string{"MCDONALDS", "DOMINOS"}, backend.previewed[0])

	panels := m.preview.Panels()
	assert.False(t, panels.Visible(components.PanelPreviewLoading))
	assert.True(t, panels.Visible(components.PanelPreviewControls))
	assert.True(t, panels.Visible(components.PanelPreviewTransactions))
	assert.False(t, panels.Visible(components.PanelPreviewEmpty))
	assert.Equal(t, "2", panels.Text(components.PanelPreviewCount))

	sel := m.preview.Selection()
	assert.Equal(t, 2, sel.Count())
	assert.True(t, sel.AllChecked())
	assert.Equal(t, "Categorize 2 selected", sel.CommitButton().Label)

	m = send(t, r, m, tuitesting.KeySpace())
	assert.Equal(t, "Categorize 1 selected", m.preview.Selection().CommitButton().Label)
	assert.False(t, m.preview.Selection().AllChecked())

	m = send(t, r, m, tuitesting.KeyPress("n"))
	assert.Equal(t, categorize.Button{Label: "Categorize selected"}, m.preview.Selection().CommitButton())

	m = send(t, r, m, tuitesting.KeyPress("t"))
	assert.Equal(t, 2, m.preview.Selection().Count())

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "Preview: Restaurants/Eten")
	assert.Contains(t, view, "[x] 2024-03-01")
	assert.Contains(t, view, "Category: Restaurants/Eten (recommended)")

	m = send(t, r, m, tuitesting.KeyEsc())
	assert.False(t, m.preview.IsOpen())
	_, open := m.slot.Active()
	assert.False(t, open)
}

func TestModel_PreviewEmpty(t *testing.T) {
	backend := &fakeBackend{
		analysis: testAnalysis(),
		preview:  &model.PreviewResponse{Transactions: []model.PreviewTransaction{}, Count: 0},
	}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("p"))

	panels := m.preview.Panels()
	assert.True(t, panels.Visible(components.PanelPreviewEmpty))
	assert.False(t, panels.Visible(components.PanelPreviewControls))
	assert.False(t, panels.Visible(components.PanelPreviewTransactions))
	assert.False(t, panels.Visible(components.PanelPreviewLoading))
	assert.Equal(t, 0, m.preview.Selection().Len())
	assert.Contains(t, tuitesting.StripANSI(m.View()), "No transactions found")
}

func TestModel_PreviewFailureDegradesSilently(t *testing.T) {
	tests := []struct {
		backend *fakeBackend
		name    string
	}{
		{name: "transport", backend: &fakeBackend{previewErr: errors.New("connection refused")}},
		{name: "in-band error", backend: &fakeBackend{preview: &model.PreviewResponse{Error: "Geen patronen opgegeven"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.backend.analysis = testAnalysis()
			m, r := load(t, tt.backend)

			m = send(t, r, m, tuitesting.KeyPress("p"))

			assert.True(t, m.preview.Panels().Visible(components.PanelPreviewEmpty))
			assert.False(t, m.preview.Panels().Visible(components.PanelPreviewControls))
			assert.False(t, m.notice.Visible(), "preview failures are not alerted")
		})
	}
}

func TestModel_PreviewOpenRejectedWhilePending(t *testing.T) {
	m, _ := load(t, &fakeBackend{analysis: testAnalysis(), preview: testPreview()})

	m, cmd := m.OpenPreview(0)
	require.NotNil(t, cmd)

	m, cmd = m.OpenPreview(1)
	assert.Nil(t, cmd)

	active, ok := m.slot.Active()
	require.True(t, ok)
	assert.Equal(t, 0, active.Index)
}

func TestModel_StalePreviewDiscarded(t *testing.T) {
	m, _ := load(t, &fakeBackend{analysis: testAnalysis()})

	m, _ = m.OpenPreview(0)
	m.closePreview()
	m, _ = m.OpenPreview(1)

	m, _ = m.update(previewLoadedMsg{seq: 1, resp: testPreview()})
	assert.True(t, m.preview.Panels().Visible(components.PanelPreviewLoading))
	assert.Equal(t, 0, m.preview.Selection().Len())

	m, _ = m.update(previewLoadedMsg{seq: 2, resp: testPreview()})
	assert.Equal(t, 2, m.preview.Selection().Len())
}

func TestModel_PreviewFromBeforeReloadDiscarded(t *testing.T) {
	backend := &fakeBackend{analysis: testAnalysis()}
	m, r := load(t, backend)

	// first load never completes before the reload
	m, _ = m.OpenPreview(0)
	m = send(t, r, m, tuitesting.KeyEsc(), tuitesting.KeyPress("r"))
	require.Equal(t, 2, backend.analysisCalls)

	backend.preview = &model.PreviewResponse{
		Count: 1,
		Transactions: []model.PreviewTransaction{
			{ID: 31, Date: "2024-03-02", Name: "SHELL A28", Amount: -60, AmountFormatted: "-€60,00", Code: "BA"},
		},
	}
	m, cmd := m.OpenPreview(1)
	require.NotNil(t, cmd)

	m, _ = m.update(previewLoadedMsg{gen: 0, seq: 1, resp: testPreview()})
	assert.True(t, m.preview.Panels().Visible(components.PanelPreviewLoading))
	assert.Equal(t, 0, m.preview.Selection().Len())

	m = send(t, r, m, tuitesting.KeyRight(), tuitesting.KeyEnter())
	assert.Equal(t, "Select at least one transaction", m.notice.Message())
	assert.Empty(t, backend.assigned)
	m = send(t, r, m, tuitesting.KeyEnter())

	m = asModel(t, r.Settle(m, cmd))
	require.Equal(t, 1, m.preview.Selection().Len())
	assert.Equal(t, []int{31}, m.preview.Selection().SelectedIDs())

	m = send(t, r, m, tuitesting.KeyEnter(), tuitesting.KeyPress("y"))
	require.Len(t, backend.assigned, 1)
	assert.Equal(t, []string{"SHELL"}, backend.assigned[0].Patterns)
	assert.Equal(t, []int{31}, backend.assigned[0].TransactionIDs)
}

func TestModel_CategorizeWithoutCategory(t *testing.T) {
	backend := &fakeBackend{analysis: testAnalysis()}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyDown(), tuitesting.KeyPress("c"))

	require.True(t, m.notice.Visible())
	assert.Equal(t, "Select a category first", m.notice.Message())
	assert.False(t, m.confirm.Visible())
	assert.Empty(t, backend.assigned)
}

func TestModel_CategorizeDeclined(t *testing.T) {
	backend := &fakeBackend{analysis: testAnalysis()}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("c"))
	require.True(t, m.confirm.Visible())
	assert.Contains(t, m.confirm.Prompt(), `2 patterns to "Restaurants/Eten"`)

	m = send(t, r, m, tuitesting.KeyPress("n"))
	assert.False(t, m.confirm.Visible())
	assert.Empty(t, backend.assigned)
	assert.False(t, m.cards[0].Control.IsBusy())
}

func TestModel_CategorizeSuccessReloads(t *testing.T) {
	backend := &fakeBackend{
		analysis: testAnalysis(),
		assign:   &model.BulkAssignResponse{Updated: 7, Message: "7 transacties bijgewerkt"},
	}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("c"))

	// Confirm without settling so the in-flight state is visible.
	next, cmd := m.Update(tuitesting.KeyPress("y"))
	m = asModel(t, next)
	msgs := tuitesting.Exec(cmd)
	require.Len(t, msgs, 1)
	confirmed := msgs[0]
	next, cmd = m.Update(confirmed)
	m = asModel(t, next)

	require.NotNil(t, cmd)
	assert.True(t, m.cards[0].Control.IsBusy())
	assert.Equal(t, categorize.Button{Label: categorize.BusyLabel}, m.cards[0].Control.Button())

	// A second activation while busy does nothing.
	again, againCmd := m.Categorize(0)
	assert.Nil(t, againCmd)
	assert.False(t, again.confirm.Visible())

	m = asModel(t, r.Settle(m, cmd))
	require.Len(t, backend.assigned, 1)
	assert.Equal(t, model.BulkAssignRequest{
		Patterns:     []string{"MCDONALDS", "DOMINOS"},
		CategoryID:   3,
		CategoryName: "Restaurants/Eten",
	}, backend.assigned[0])

	require.True(t, m.notice.Visible())
	assert.Contains(t, m.notice.Message(), "7")
	assert.Equal(t, `Success! 7 transactions assigned to "Restaurants/Eten"`, m.notice.Message())
	assert.True(t, m.cards[0].Control.IsBusy(), "control stays busy until reload")
	assert.Equal(t, 1, backend.analysisCalls)

	gen := m.gen
	m = send(t, r, m, tuitesting.KeyEnter())
	assert.Equal(t, 2, backend.analysisCalls)
	assert.Equal(t, gen+1, m.gen)
	assert.False(t, m.cards[0].Control.IsBusy(), "reload rebuilds the cards")
}

func TestModel_CategorizeNoUpdateRestoresControl(t *testing.T) {
	backend := &fakeBackend{
		analysis: testAnalysis(),
		assign:   &model.BulkAssignResponse{Updated: 0, Message: "geen match"},
	}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("c"), tuitesting.KeyPress("y"))

	require.Len(t, backend.assigned, 1)
	assert.Contains(t, m.notice.Message(), "geen match")
	assert.False(t, m.cards[0].Control.IsBusy())
	assert.Equal(t, categorize.Button{Label: components.CategorizeLabel, Enabled: true}, m.cards[0].Control.Button())

	m = send(t, r, m, tuitesting.KeyEnter())
	assert.Equal(t, 1, backend.analysisCalls, "no reload after a no-op commit")
}

func TestModel_CategorizeFailureRestoresControl(t *testing.T) {
	backend := &fakeBackend{
		analysis:  testAnalysis(),
		assignErr: errors.New("HTTP error! status: 400 (Patronen en categorie_id zijn verplicht)"),
	}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("c"), tuitesting.KeyPress("y"))

	assert.True(t, strings.HasPrefix(m.notice.Message(), "An error occurred: "))
	assert.False(t, m.cards[0].Control.IsBusy())
}

func TestModel_FilteredCommit(t *testing.T) {
	backend := &fakeBackend{
		analysis: testAnalysis(),
		preview:  testPreview(),
		assign:   &model.BulkAssignResponse{Updated: 1},
	}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyPress("p"), tuitesting.KeySpace(), tuitesting.KeyEnter())

	require.True(t, m.confirm.Visible())
	assert.Equal(t, `Assign 1 transactions to "Restaurants/Eten"?`, m.confirm.Prompt())

	m = send(t, r, m, tuitesting.KeyPress("y"))

	assert.False(t, m.preview.IsOpen())
	_, open := m.slot.Active()
	assert.False(t, open)
	require.Len(t, backend.assigned, 1)
	assert.Equal(t, []int{12}, backend.assigned[0].TransactionIDs)
	assert.Equal(t, []string{"MCDONALDS", "DOMINOS"}, backend.assigned[0].Patterns)
	assert.Contains(t, m.notice.Message(), "Success! 1 transactions")
}

func TestModel_FilteredCommitValidation(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		backend := &fakeBackend{analysis: testAnalysis(), preview: testPreview()}
		m, r := load(t, backend)

		m = send(t, r, m, tuitesting.KeyPress("p"), tuitesting.KeyPress("n"), tuitesting.KeyEnter())

		assert.Equal(t, "Select at least one transaction", m.notice.Message())
		assert.True(t, m.preview.IsOpen())
		assert.Empty(t, backend.assigned)
	})

	t.Run("no category", func(t *testing.T) {
		backend := &fakeBackend{analysis: testAnalysis(), preview: testPreview()}
		m, r := load(t, backend)

		m = send(t, r, m, tuitesting.KeyDown(), tuitesting.KeyPress("p"), tuitesting.KeyEnter())

		assert.Equal(t, "Select a category first", m.notice.Message())
		assert.Empty(t, backend.assigned)
	})

	t.Run("no active context", func(t *testing.T) {
		backend := &fakeBackend{analysis: testAnalysis()}
		m, _ := load(t, backend)

		m, _ = m.CategorizeSelected()

		assert.Equal(t, "No preview is open", m.notice.Message())
		assert.Empty(t, backend.assigned)
	})
}

func TestModel_ManualReload(t *testing.T) {
	backend := &fakeBackend{analysis: testAnalysis()}
	m, r := load(t, backend)

	m = send(t, r, m, tuitesting.KeyRight(), tuitesting.KeyPress("r"))

	assert.Equal(t, 2, backend.analysisCalls)
	assert.Equal(t, 3, m.cards[0].Selector.Value(), "selectors are rebuilt from the analysis")
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, r := load(t, &fakeBackend{analysis: testAnalysis()})

	m = send(t, r, m, tuitesting.KeyPress("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "categorize all")

	m = send(t, r, m, tuitesting.KeyEsc())
	assert.False(t, m.showHelp)

	next, cmd := m.Update(tuitesting.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, asModel(t, next).View())
}

func TestModel_ConcurrentNoticesQueue(t *testing.T) {
	m, _ := load(t, &fakeBackend{analysis: testAnalysis()})

	m, _ = m.update(commitDoneMsg{index: 0, gen: m.gen, outcome: categorize.Outcome{Kind: categorize.OutcomeNoUpdate, Message: "first"}})
	m, _ = m.update(commitDoneMsg{index: 1, gen: m.gen, outcome: categorize.Outcome{Kind: categorize.OutcomeNoUpdate, Message: "second"}})

	assert.Equal(t, "first", m.notice.Message())
	m, _ = m.handleKey(tuitesting.KeyEnter())
	assert.Equal(t, "second", m.notice.Message())
}

package tui

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keessnoek/ing-transactie-verwerker/internal/api"
	"github.com/keessnoek/ing-transactie-verwerker/internal/demo"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/components"
	tuitesting "github.com/keessnoek/ing-transactie-verwerker/internal/tui/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemoModel(t *testing.T, opts demo.Options) (Model, *tuitesting.TestRenderer, *demo.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := demo.NewSampleStore()
	srv := httptest.NewServer(demo.NewRouter(store, opts))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	app, err := New(client, WithReloadDelay(time.Millisecond), WithSize(120, 40))
	require.NoError(t, err)

	r := tuitesting.NewTestRenderer()
	m := app.Model()
	return asModel(t, r.Settle(m, m.Init())), r, store
}

func TestDemoBackend_FilteredCommitAndReload(t *testing.T) {
	m, r, store := newDemoModel(t, demo.Options{})

	require.Len(t, m.cards, 4)
	assert.Equal(t, "75", m.panels.Text(components.PanelUncategorized))
	assert.Equal(t, "Boodschappen", m.cards[0].Selector.SelectedName())

	m = send(t, r, m, tuitesting.KeyPress("p"))
	require.True(t, m.preview.IsOpen())
	require.Equal(t, 29, m.preview.Selection().Count())
	first := m.preview.Selection().Rows()[0].Transaction.ID

	m = send(t, r, m, tuitesting.KeyPress("n"), tuitesting.KeySpace(), tuitesting.KeyEnter())
	require.True(t, m.confirm.Visible())
	assert.Equal(t, `Assign 1 transactions to "Boodschappen"?`, m.confirm.Prompt())

	m = send(t, r, m, tuitesting.KeyPress("y"))
	assert.Equal(t, `Success! 1 transactions assigned to "Boodschappen"`, m.notice.Message())

	tx, ok := store.Transaction(first)
	require.True(t, ok)
	assert.Equal(t, demo.CategoryBoodschappen, tx.CategoryID)

	m = send(t, r, m, tuitesting.KeyEnter())
	assert.Equal(t, "74", m.panels.Text(components.PanelUncategorized))
	assert.Equal(t, 28, m.cards[0].Suggestion.TotalTransactions)
}

func TestDemoBackend_WholeGroupFailure(t *testing.T) {
	m, r, _ := newDemoModel(t, demo.Options{FailAssign: true})

	m = send(t, r, m, tuitesting.KeyPress("c"), tuitesting.KeyPress("y"))

	assert.Contains(t, m.notice.Message(), "An error occurred: ")
	assert.Contains(t, m.notice.Message(), "database is locked")
	assert.False(t, m.cards[0].Control.IsBusy())
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// loadAnalysis requests the categorization analysis for generation gen.
func (m Model) loadAnalysis(gen uint64) tea.Cmd {
	backend := m.backend
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		analysis, err := backend.Analysis(ctx)
		return analysisLoadedMsg{gen: gen, analysis: analysis, err: err}
	}
}

// loadPreview requests the transactions matching patterns for the preview
// identified by seq within the current generation.
func (m Model) loadPreview(seq uint64, patterns []string) tea.Cmd {
	backend := m.backend
	gen := m.gen
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := backend.PreviewTransactions(ctx, patterns)
		return previewLoadedMsg{gen: gen, seq: seq, resp: resp, err: err}
	}
}

// commit submits req on behalf of the card at index.
func (m Model) commit(index int, req model.BulkAssignRequest) tea.Cmd {
	backend := m.backend
	timeout := m.config.RequestTimeout
	reporter := m.config.Reporter
	gen := m.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		outcome := categorize.Commit(ctx, backend, req, reporter)
		return commitDoneMsg{index: index, outcome: outcome, gen: gen}
	}
}

// scheduleReload reloads the analysis after the configured delay.
func (m Model) scheduleReload() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.config.ReloadDelay, func(time.Time) tea.Msg {
		return reloadMsg{gen: gen}
	})
}

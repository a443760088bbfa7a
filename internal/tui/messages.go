package tui

import (
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Data loading messages.
type analysisLoadedMsg struct {
	err      error
	analysis *model.Analysis
	gen      uint64
}

type previewLoadedMsg struct {
	err  error
	resp *model.PreviewResponse
	gen  uint64
	seq  uint64
}

// Commit messages.
type commitDoneMsg struct {
	outcome categorize.Outcome
	index   int
	gen     uint64
}

// reloadMsg discards all state and loads the analysis again.
type reloadMsg struct {
	gen uint64
}

// pendingCommit is a request waiting for confirmation.
type pendingCommit struct {
	req      model.BulkAssignRequest
	index    int
	filtered bool
}

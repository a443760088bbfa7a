// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Backend is the contract of the categorization backend. The backend owns
// transaction storage and the pattern matching; this client only reads its
// analysis and submits assignments.
type Backend interface {
	// Analysis returns suggestions, potential patterns, counters and the
	// known categories.
	Analysis(ctx context.Context) (*model.Analysis, error)

	// PreviewTransactions returns the uncategorized transactions matching
	// any of the patterns. A non-nil response may still carry an in-band
	// Error that callers must check.
	PreviewTransactions(ctx context.Context, patterns []string) (*model.PreviewResponse, error)

	// BulkAssign assigns a category to matching transactions.
	BulkAssign(ctx context.Context, req model.BulkAssignRequest) (*model.BulkAssignResponse, error)
}

// AssignStats summarizes a run of several assignments.
type AssignStats struct {
	Attempted int
	Succeeded int
	Skipped   int
	Failed    int
	Updated   int
}

package api

import (
	"context"
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
)

// Default endpoint paths of the reports blueprint.
const (
	DefaultAnalysisPath = "/reports/categoriseer-analyse"
	DefaultPreviewPath  = "/reports/preview-transacties"
	DefaultAssignPath   = "/reports/auto-categoriseren"
)

// Paths are the backend endpoints used by the categorization workflow.
type Paths struct {
	Analysis string
	Preview  string
	Assign   string
}

// DefaultPaths returns the standard endpoint paths.
func DefaultPaths() Paths {
	return Paths{
		Analysis: DefaultAnalysisPath,
		Preview:  DefaultPreviewPath,
		Assign:   DefaultAssignPath,
	}
}

func (p Paths) withDefaults() Paths {
	d := DefaultPaths()
	if p.Analysis == "" {
		p.Analysis = d.Analysis
	}
	if p.Preview == "" {
		p.Preview = d.Preview
	}
	if p.Assign == "" {
		p.Assign = d.Assign
	}
	return p
}

// Ensure we implement the interface.
var _ service.Backend = (*Client)(nil)

// Analysis implements service.Backend.
func (c *Client) Analysis(ctx context.Context) (*model.Analysis, error) {
	var analysis model.Analysis
	if err := c.Get(ctx, c.paths.Analysis, &analysis); err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	return &analysis, nil
}

// PreviewTransactions implements service.Backend.
func (c *Client) PreviewTransactions(ctx context.Context, patterns []string) (*model.PreviewResponse, error) {
	var resp model.PreviewResponse
	if err := c.Post(ctx, c.paths.Preview, model.PreviewRequest{Patterns: patterns}, &resp); err != nil {
		return nil, fmt.Errorf("failed to load preview: %w", err)
	}
	return &resp, nil
}

// BulkAssign implements service.Backend.
func (c *Client) BulkAssign(ctx context.Context, req model.BulkAssignRequest) (*model.BulkAssignResponse, error) {
	var resp model.BulkAssignResponse
	if err := c.Post(ctx, c.paths.Assign, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to assign category: %w", err)
	}
	return &resp, nil
}

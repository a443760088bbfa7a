package categorize

import (
	"context"
	"errors"
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
)

// Validation errors. They are raised before any request is made and carry
// the message shown to the user.
var (
	ErrNoCategory      = common.NewUserError("Select a category first", nil)
	ErrNoSelection     = common.NewUserError("Select at least one transaction", nil)
	ErrNoActiveContext = common.NewUserError("No preview is open", nil)
	ErrNoPatterns      = common.NewUserError("This suggestion has no patterns", nil)
)

// ErrPreviewFailed wraps an in-band error reported by the preview endpoint.
var ErrPreviewFailed = errors.New("preview failed")

// BusyLabel is shown on a control while its commit is in flight.
const BusyLabel = "Working..."

// WholeGroupRequest builds the request that assigns the selected category to
// everything matching patterns.
func WholeGroupRequest(sel Selector, patterns []string) (model.BulkAssignRequest, error) {
	if !sel.IsChosen() {
		return model.BulkAssignRequest{}, ErrNoCategory
	}
	if len(patterns) == 0 {
		return model.BulkAssignRequest{}, ErrNoPatterns
	}
	return model.BulkAssignRequest{
		Patterns:     patterns,
		CategoryID:   sel.Value(),
		CategoryName: sel.SelectedName(),
	}, nil
}

// FilteredRequest builds the request restricted to the checked preview rows
// of the active context. ok is false when no context is active.
func FilteredRequest(active ModalContext, ok bool, sel Selector, selection Selection) (model.BulkAssignRequest, error) {
	if !ok {
		return model.BulkAssignRequest{}, ErrNoActiveContext
	}
	if !sel.IsChosen() {
		return model.BulkAssignRequest{}, ErrNoCategory
	}
	ids := selection.SelectedIDs()
	if len(ids) == 0 {
		return model.BulkAssignRequest{}, ErrNoSelection
	}
	return model.BulkAssignRequest{
		Patterns:       active.Patterns,
		CategoryID:     sel.Value(),
		CategoryName:   sel.SelectedName(),
		TransactionIDs: ids,
	}, nil
}

// ConfirmPrompt is the question asked before req is submitted.
func ConfirmPrompt(req model.BulkAssignRequest) string {
	if req.IsFiltered() {
		return fmt.Sprintf("Assign %d transactions to %q?", len(req.TransactionIDs), req.CategoryName)
	}
	return fmt.Sprintf("Assign %d patterns to %q?\n\nThis cannot be undone.", len(req.Patterns), req.CategoryName)
}

// OutcomeKind classifies the result of a commit.
type OutcomeKind int

const (
	// OutcomeSuccess means at least one transaction was updated.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeNoUpdate means the backend accepted the request but updated nothing.
	OutcomeNoUpdate
	// OutcomeFailure means the request failed.
	OutcomeFailure
)

// String returns a string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "Success"
	case OutcomeNoUpdate:
		return "NoUpdate"
	case OutcomeFailure:
		return "Failure"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Outcome is the interpreted result of a commit.
type Outcome struct {
	Err     error
	Message string
	Kind    OutcomeKind
	Updated int
}

// Reload reports whether the analysis must be reloaded.
func (o Outcome) Reload() bool {
	return o.Kind == OutcomeSuccess
}

// RestoreControl reports whether the triggering control is re-enabled.
func (o Outcome) RestoreControl() bool {
	return o.Kind != OutcomeSuccess
}

// Interpret turns a bulk-assign result into an outcome. categoryName is the
// destination shown in the success message.
func Interpret(resp *model.BulkAssignResponse, err error, categoryName string, reporter common.Reporter) Outcome {
	if err == nil && resp != nil && resp.Error != "" {
		err = common.NewUserError(resp.Error, nil)
	}
	if err == nil && resp == nil {
		err = common.ErrUnexpectedResponse
	}
	if err != nil {
		return Outcome{
			Kind:    OutcomeFailure,
			Err:     err,
			Message: reporter.Handle(err, "Auto categorize"),
		}
	}

	if resp.Updated > 0 {
		return Outcome{
			Kind:    OutcomeSuccess,
			Updated: resp.Updated,
			Message: fmt.Sprintf("Success! %d transactions assigned to %q", resp.Updated, categoryName),
		}
	}
	return Outcome{
		Kind:    OutcomeNoUpdate,
		Message: "No transactions updated: " + resp.Message,
	}
}

// Commit submits req and interprets the response.
func Commit(ctx context.Context, backend service.Backend, req model.BulkAssignRequest, reporter common.Reporter) Outcome {
	common.LogInfo("Submitting category assignment", common.Fields{
		"category_id":  req.CategoryID,
		"patterns":     len(req.Patterns),
		"filtered":     req.IsFiltered(),
		"transactions": len(req.TransactionIDs),
	})
	resp, err := backend.BulkAssign(ctx, req)
	return Interpret(resp, err, req.CategoryName, reporter)
}

// CheckPreview converts an in-band preview error into an error.
func CheckPreview(resp *model.PreviewResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: empty response", ErrPreviewFailed)
	}
	if resp.Error != "" {
		return fmt.Errorf("%w: %s", ErrPreviewFailed, resp.Error)
	}
	return nil
}

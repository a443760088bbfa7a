package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/cli"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
	"github.com/spf13/cobra"
)

// errInterrupted is returned when a run of assignments is stopped early.
var errInterrupted = errors.New("interrupted")

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [index]",
		Short: "Assign a category to the transactions of a suggestion",
		Long: `Assign a category to every uncategorized transaction matched by a
suggestion, or only to the transactions listed with --ids. Without
--category the recommended category is used.

With --all-recommended every suggestion that has a recommended category
is applied in turn.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runApply,
	}

	cmd.Flags().Int("category", 0, "category id to assign (default: the recommended category)")
	cmd.Flags().String("ids", "", "comma-separated transaction ids to restrict the assignment to")
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	cmd.Flags().Bool("all-recommended", false, "apply every suggestion with a recommended category")

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all-recommended")
	switch {
	case all && len(args) > 0:
		return errors.New("use either an index or --all-recommended")
	case !all && len(args) == 0:
		return errors.New("a suggestion index is required")
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	backend, err := newBackend(settings)
	if err != nil {
		return err
	}

	analysis, err := loadAnalysis(cmd.Context(), backend)
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	if all {
		return applyAllRecommended(cmd.Context(), backend, analysis, prompter, cmd.OutOrStdout(), yes)
	}

	suggestion, err := suggestionAt(analysis, args[0])
	if err != nil {
		return err
	}
	categoryID, _ := cmd.Flags().GetInt("category")
	idList, _ := cmd.Flags().GetString("ids")
	ids, err := parseIDs(idList)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd.Context(), backend, analysis.Categories, suggestion, categoryID, ids)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := prompter.Confirm(cmd.Context(), categorize.ConfirmPrompt(req))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing was changed."))
			return nil
		}
	}

	outcome := categorize.Commit(cmd.Context(), backend, req, common.NewReporter())
	return reportOutcome(cmd.OutOrStdout(), outcome)
}

// buildRequest applies the same validation as the review screen. With ids
// the preview is loaded and only the listed rows stay checked.
func buildRequest(ctx context.Context, backend service.Backend, categories model.CategoryList, s model.Suggestion, categoryID int, ids []int) (model.BulkAssignRequest, error) {
	sel := categorize.NewSelector(categories, s.SuggestedCategoryID)
	if categoryID != 0 && !sel.SelectID(categoryID) {
		return model.BulkAssignRequest{}, fmt.Errorf("category %d does not exist", categoryID)
	}

	if len(ids) == 0 {
		return categorize.WholeGroupRequest(sel, s.Patterns)
	}

	resp, err := backend.PreviewTransactions(ctx, s.Patterns)
	if err == nil {
		err = categorize.CheckPreview(resp)
	}
	if err != nil {
		return model.BulkAssignRequest{}, common.NewUserError("Could not load the preview", err)
	}

	selection := categorize.NewSelection(resp.Transactions)
	selection.SelectNone()
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for i, row := range selection.Rows() {
		if wanted[row.Transaction.ID] {
			selection.Toggle(i)
			delete(wanted, row.Transaction.ID)
		}
	}
	for _, id := range ids {
		if wanted[id] {
			return model.BulkAssignRequest{}, fmt.Errorf("transaction %d is not matched by this suggestion", id)
		}
	}

	active := categorize.ModalContext{CategoryName: s.Category, Patterns: s.Patterns}
	return categorize.FilteredRequest(active, true, sel, selection)
}

func reportOutcome(out io.Writer, outcome categorize.Outcome) error {
	switch outcome.Kind {
	case categorize.OutcomeSuccess:
		fmt.Fprintln(out, cli.FormatSuccess(outcome.Message))
	case categorize.OutcomeNoUpdate:
		fmt.Fprintln(out, cli.FormatWarning(outcome.Message))
	default:
		return errors.New(outcome.Message)
	}
	return nil
}

func applyAllRecommended(ctx context.Context, backend service.Backend, analysis *model.Analysis, prompter *cli.Prompter, out io.Writer, yes bool) error {
	type job struct {
		req   model.BulkAssignRequest
		valid bool
	}

	jobs := make([]job, len(analysis.Suggestions))
	ready := 0
	for i, s := range analysis.Suggestions {
		req, err := categorize.WholeGroupRequest(categorize.NewSelector(analysis.Categories, s.SuggestedCategoryID), s.Patterns)
		if err != nil {
			continue
		}
		jobs[i] = job{req: req, valid: true}
		ready++
	}

	if ready == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No suggestion has a recommended category."))
		return nil
	}

	if !yes {
		ok, err := prompter.Confirm(ctx, fmt.Sprintf("Assign %d suggestions to their recommended categories?", ready))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Nothing was changed."))
			return nil
		}
	}

	interrupts := cli.NewInterruptHandler(out)
	ctx = interrupts.HandleInterrupts(ctx, prompter.Progress)
	defer interrupts.Stop()

	reporter := common.NewReporter()
	prompter.StartProgress(len(jobs))
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		if !j.valid {
			prompter.Skip()
			continue
		}
		prompter.Record(categorize.Commit(ctx, backend, j.req, reporter))
	}
	prompter.ShowCompletion()

	if interrupts.WasInterrupted() || ctx.Err() != nil {
		return errInterrupted
	}
	if failed := prompter.Stats().Failed; failed > 0 {
		return fmt.Errorf("%d of %d assignments failed", failed, ready)
	}
	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/cli"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/format"
	"github.com/spf13/cobra"
)

const previewNameWidth = 50

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <index>",
		Short: "Show the transactions matched by a suggestion",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	backend, err := newBackend(settings)
	if err != nil {
		return err
	}
	f := newFormatter(settings)
	out := cmd.OutOrStdout()

	analysis, err := loadAnalysis(cmd.Context(), backend)
	if err != nil {
		return err
	}
	suggestion, err := suggestionAt(analysis, args[0])
	if err != nil {
		return err
	}

	resp, err := backend.PreviewTransactions(cmd.Context(), suggestion.Patterns)
	if err == nil {
		err = categorize.CheckPreview(resp)
	}
	if err != nil {
		return common.NewUserError("Could not load the preview", err)
	}

	fmt.Fprintln(out, cli.FormatTitle("Preview: "+suggestion.Category))
	if len(resp.Transactions) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No transactions found for these patterns"))
		return nil
	}

	fmt.Fprintf(out, "%s transactions found\n\n", f.Count(resp.Count))
	rows := make([][]string, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		amount := t.AmountFormatted
		if amount == "" {
			amount = f.Amount(t.Amount)
		}
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Date,
			format.Truncate(t.Name, previewNameWidth),
			amount,
			t.Code,
		})
	}
	fmt.Fprintln(out, cli.RenderTable([]string{"ID", "Date", "Name", "Amount", "Code"}, rows, 0, 3))
	return nil
}

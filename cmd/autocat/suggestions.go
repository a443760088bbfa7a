package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/cli"
	"github.com/spf13/cobra"
)

func suggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "suggestions",
		Aliases: []string{"list"},
		Short:   "List the categorization suggestions",
		Long: `Show the counters, the suggested pattern groups and the frequent
transaction names that have no suggestion yet. The index in the first
column is used by the preview and apply commands.`,
		Args: cobra.NoArgs,
		RunE: runSuggestions,
	}
}

func runSuggestions(cmd *cobra.Command, _ []string) error {
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

	fmt.Fprintln(out, cli.FormatTitle("Auto-categorization"))
	fmt.Fprintf(out, "Uncategorized: %s   Categorized: %s\n\n",
		cli.WarningStyle.Render(f.Count(analysis.Uncategorized)),
		cli.SuccessStyle.Render(f.Count(analysis.Categorized)))

	if len(analysis.Suggestions) == 0 {
		fmt.Fprintln(out, cli.FormatSuccess("No suggestions found. Every recurring transaction already has a category."))
	} else {
		rows := make([][]string, 0, len(analysis.Suggestions))
		for i, s := range analysis.Suggestions {
			recommended := "-"
			if sel := categorize.NewSelector(analysis.Categories, s.SuggestedCategoryID); sel.IsChosen() {
				recommended = sel.SelectedName()
			}
			rows = append(rows, []string{
				strconv.Itoa(i),
				s.Category,
				recommended,
				strings.Join(s.Examples, ", "),
				f.Count(s.TotalTransactions),
				f.Amount(s.TotalAmount),
			})
		}
		fmt.Fprintln(out, cli.RenderTable(
			[]string{"#", "Suggestion", "Recommended category", "Patterns", "Transactions", "Amount"},
			rows, 4, 5,
		))
	}

	if len(analysis.Potential) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.TitleStyle.Render("Potential patterns"))
		rows := make([][]string, 0, len(analysis.Potential))
		for _, p := range analysis.Potential {
			rows = append(rows, []string{p.Name, f.Count(p.Count), f.Amount(p.AverageAmount)})
		}
		fmt.Fprintln(out, cli.RenderTable([]string{"Name", "Transactions", "Average"}, rows, 1, 2))
		fmt.Fprintln(out, cli.SubtleStyle.Render("Create a category for these manually."))
	}

	return nil
}

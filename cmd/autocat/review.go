package main

import (
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/cli"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Open the interactive review screen",
		Long: `Open the auto-categorization screen: browse the suggestions, preview
the matching transactions, pick a category and assign it to all or a
selection of them.`,
		RunE: runReview,
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("record", false, "record every frame to a temporary directory")
	cmd.Flags().Bool("inline", false, "render below the prompt instead of full screen")

	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	backend, err := newBackend(settings)
	if err != nil {
		return err
	}

	record, _ := cmd.Flags().GetBool("record")
	inline, _ := cmd.Flags().GetBool("inline")

	opts := []tui.Option{
		tui.WithTheme(themes.GetTheme(settings.UI.Theme)),
		tui.WithFormatter(newFormatter(settings)),
		tui.WithReloadDelay(settings.UI.ReloadDelay),
		tui.WithRequestTimeout(settings.API.Timeout),
		tui.WithAltScreen(!inline),
	}
	if record {
		rec := tui.NewRecorder("")
		opts = append(opts, tui.WithRecorder(rec))
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("Recording frames to "+rec.Dir()))
	}

	app, err := tui.New(backend, opts...)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}

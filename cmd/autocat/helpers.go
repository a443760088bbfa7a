package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/keessnoek/ing-transactie-verwerker/internal/api"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/config"
	"github.com/keessnoek/ing-transactie-verwerker/internal/format"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
	"github.com/spf13/viper"
)

// loadSettings returns the validated settings.
func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// newBackend creates the API client for the configured backend.
func newBackend(s config.Settings) (*api.Client, error) {
	return api.NewClient(s.API.BaseURL,
		api.WithTimeout(s.API.Timeout),
		api.WithPaths(s.API.Paths()),
		api.WithUserAgent(api.DefaultUserAgent+"/"+version),
	)
}

func newFormatter(s config.Settings) format.Formatter {
	return format.New(s.UI.Locale, s.UI.CurrencySymbol)
}

// loadAnalysis fetches the analysis, wrapping failures for display.
func loadAnalysis(ctx context.Context, backend service.Backend) (*model.Analysis, error) {
	analysis, err := backend.Analysis(ctx)
	if err != nil {
		return nil, common.NewUserError("Could not load the analysis", err)
	}
	return analysis, nil
}

// suggestionAt returns the suggestion at a command-line index.
func suggestionAt(analysis *model.Analysis, arg string) (model.Suggestion, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("invalid suggestion index %q", arg)
	}
	if index < 0 || index >= len(analysis.Suggestions) {
		return model.Suggestion{}, fmt.Errorf("suggestion %d does not exist (there are %d)", index, len(analysis.Suggestions))
	}
	return analysis.Suggestions[index], nil
}

// parseIDs parses a comma-separated list of transaction ids.
func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid transaction id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

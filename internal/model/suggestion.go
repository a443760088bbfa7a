package model

// MatchedName is a distinct transaction name matched by a suggestion.
type MatchedName struct {
	Name    string  `json:"naam"`
	Count   int     `json:"aantal"`
	Average float64 `json:"gemiddeld"`
}

// Suggestion is a backend-proposed grouping of uncategorized transactions by
// name pattern, with an optional candidate destination category.
type Suggestion struct {
	SuggestedCategoryID *int          `json:"suggested_category_id"`
	Category            string        `json:"categorie"`
	Patterns            []string      `json:"patronen"`
	Examples            []string      `json:"voorbeelden"`
	MatchedNames        []MatchedName `json:"matched_namen"`
	TotalAmount         float64       `json:"totaal_bedrag"`
	TotalTransactions   int           `json:"totaal_transacties"`
}

// HasSuggestedCategory reports whether the backend proposed a category.
func (s Suggestion) HasSuggestedCategory() bool {
	return s.SuggestedCategoryID != nil
}

// TopMatches returns at most n matched names.
func (s Suggestion) TopMatches(n int) []MatchedName {
	if len(s.MatchedNames) <= n {
		return s.MatchedNames
	}
	return s.MatchedNames[:n]
}

// PotentialPattern is a frequent transaction name without a category
// candidate. It is shown for manual follow-up only.
type PotentialPattern struct {
	Name          string  `json:"naam"`
	Count         int     `json:"aantal"`
	AverageAmount float64 `json:"gemiddeld_bedrag"`
}

// Analysis is the categorization analysis for the current data set.
type Analysis struct {
	Categories    CategoryList       `json:"bestaande_categorien"`
	Suggestions   []Suggestion       `json:"categoriseer_suggesties"`
	Potential     []PotentialPattern `json:"potentiele_patronen"`
	Uncategorized int                `json:"totaal_ongecategoriseerd"`
	Categorized   int                `json:"totaal_gecategoriseerd"`
}

// IsEmpty reports whether there is nothing to act on.
func (a Analysis) IsEmpty() bool {
	return len(a.Suggestions) == 0 && len(a.Potential) == 0
}

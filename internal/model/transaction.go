package model

// PreviewTransaction is a transaction matched by a suggestion's patterns.
type PreviewTransaction struct {
	Date            string  `json:"datum"`
	Name            string  `json:"naam"`
	AmountFormatted string  `json:"bedrag_formatted"`
	Code            string  `json:"code"`               // Transaction type code (e.g. BA, GT, IC)
	Notes           string  `json:"mededelingen,omitempty"`
	Amount          float64 `json:"bedrag"`
	ID              int     `json:"id"`
}

// IsCredit reports whether the transaction adds money to the account.
func (t PreviewTransaction) IsCredit() bool {
	return t.Amount >= 0
}

// PreviewRequest asks the backend for every uncategorized transaction
// matching one of the patterns.
type PreviewRequest struct {
	Patterns []string `json:"patronen"`
}

// PreviewResponse is the preview endpoint's answer. Error may be set even on
// a 2xx response.
type PreviewResponse struct {
	Error        string               `json:"error,omitempty"`
	Transactions []PreviewTransaction `json:"transacties"`
	Count        int                  `json:"aantal"`
}

// Transaction is a stored bank transaction as the backend keeps it.
// CategoryID 0 means uncategorized.
type Transaction struct {
	Date       string
	Name       string
	Code       string
	Notes      string
	Amount     float64
	ID         int
	CategoryID int
}

// IsCategorized reports whether a category has been assigned.
func (t Transaction) IsCategorized() bool {
	return t.CategoryID != 0
}

package model

// BulkAssignRequest assigns a category to every uncategorized transaction
// matching Patterns. When TransactionIDs is set the backend restricts the
// assignment to those transactions.
type BulkAssignRequest struct {
	CategoryName   string   `json:"categorie_naam"`
	Patterns       []string `json:"patronen"`
	TransactionIDs []int    `json:"transactie_ids,omitempty"`
	CategoryID     int      `json:"categorie_id"`
}

// IsFiltered reports whether the request carries an explicit id list.
func (r BulkAssignRequest) IsFiltered() bool {
	return len(r.TransactionIDs) > 0
}

// BulkAssignResponse reports how many transactions were updated.
type BulkAssignResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Updated int    `json:"aantal_updated"`
}

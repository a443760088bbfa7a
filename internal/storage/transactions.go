package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// SaveTransactions inserts transactions. Rows with an existing id are left
// untouched.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (id, date, name, amount, code, notes, category_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range transactions {
		var categoryID sql.NullInt64
		if t.IsCategorized() {
			categoryID = sql.NullInt64{Int64: int64(t.CategoryID), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.Date, t.Name, t.Amount, t.Code, t.Notes, categoryID); err != nil {
			return fmt.Errorf("failed to save transaction %d: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns every transaction ordered by id.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, name, amount, code, notes, category_id
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			t          model.Transaction
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Date, &t.Name, &t.Amount, &t.Code, &t.Notes, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.CategoryID = int(categoryID.Int64)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// AssignCategory sets categoryID on the uncategorized transactions among
// ids and returns how many rows changed.
func (s *SQLiteStorage) AssignCategory(ctx context.Context, ids []int, categoryID int) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, categoryID)
	for _, id := range ids {
		args = append(args, id)
	}

	// #nosec G201 -- placeholders only
	query := fmt.Sprintf(`
		UPDATE transactions
		SET category_id = ?, categorized_at = CURRENT_TIMESTAMP
		WHERE category_id IS NULL AND id IN (%s)
	`, placeholders)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to assign category: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated rows: %w", err)
	}
	return int(n), nil
}

// TransactionCount returns the number of stored transactions.
func (s *SQLiteStorage) TransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

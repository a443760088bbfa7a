package storage

import (
	"context"
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// SaveCategories inserts categories, keeping existing rows.
func (s *SQLiteStorage) SaveCategories(ctx context.Context, categories model.CategoryList) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategories(categories); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO categories (id, name) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range categories {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name); err != nil {
			return fmt.Errorf("failed to save category %q: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// ListCategories returns every category ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) (model.CategoryList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories model.CategoryList
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

package demo

import (
	"context"
	"fmt"

	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/storage"
)

// OpenStore loads a store from db, seeding it with the sample data when it
// holds no transactions yet. Assignments made through the store are written
// back to db.
func OpenStore(ctx context.Context, db *storage.SQLiteStorage) (*Store, error) {
	count, err := db.TransactionCount(ctx)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		if err := db.SaveCategories(ctx, SampleCategories()); err != nil {
			return nil, fmt.Errorf("failed to seed categories: %w", err)
		}
		if err := db.SaveTransactions(ctx, SampleTransactions()); err != nil {
			return nil, fmt.Errorf("failed to seed transactions: %w", err)
		}
		common.LogInfo("Seeded demo database", common.Fields{"path": db.Path()})
	}

	categories, err := db.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := db.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	store := NewStore(categories, transactions)
	store.persister = db
	return store, nil
}

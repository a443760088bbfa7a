package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateCategories(categories model.CategoryList) error {
	if len(categories) == 0 {
		return fmt.Errorf("%w: categories", ErrEmptySlice)
	}
	for _, c := range categories {
		if c.ID <= 0 {
			return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidCategory, c.ID)
		}
		if err := validateString(c.Name, "category name"); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCategory, err)
		}
	}
	return nil
}

func validateTransactions(transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}
	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidTransaction, txn.ID)
	}
	if strings.TrimSpace(txn.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidTransaction)
	}
	return nil
}

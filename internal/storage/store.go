// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitpay/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for transaction history operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTransaction persists a new transaction.
	// The ID and CreatedAt fields are populated by the store when empty.
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	// GetTransaction retrieves a transaction by its ID.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// ListTransactionsByPayer returns the payer's transactions, newest first.
	// A limit <= 0 returns all of them.
	ListTransactionsByPayer(ctx context.Context, payer string, limit int) ([]*models.Transaction, error)

	// DeleteTransaction removes a transaction by ID.
	// Returns an error wrapping ErrNotFound if it does not exist.
	DeleteTransaction(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

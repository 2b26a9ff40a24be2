package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// CreateTransaction persists a new transaction to the database.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	// Generate ID if not set
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}

	var description interface{} = nil
	if txn.Description != "" {
		description = txn.Description
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, payer, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		txn.ID, txn.Payer, txn.Amount.StringFixed(2), description, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, payer, amount, description, created_at
		 FROM transactions WHERE id = ?`,
		id,
	)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}

// ListTransactionsByPayer retrieves the payer's transactions, newest first.
func (s *SQLiteStore) ListTransactionsByPayer(ctx context.Context, payer string, limit int) ([]*models.Transaction, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payer, amount, description, created_at
		 FROM transactions WHERE payer = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		payer, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by payer: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	txn := &models.Transaction{}
	var description sql.NullString

	if err := row.Scan(&txn.ID, &txn.Payer, &txn.Amount, &description, &txn.CreatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		txn.Description = description.String
	}
	return txn, nil
}

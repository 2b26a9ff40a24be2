package models

import "github.com/shopspring/decimal"

// Transaction is a derived summary of a settled purchase, kept for history.
// It is written by the surrounding service after a balance computation; the
// calculator itself never reads or writes it.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Payer is the participant who fronted the money.
	Payer string

	// Amount is what the transaction records: either the purchase total or
	// the amount owed back to the payer, rounded to cents.
	Amount decimal.Decimal

	// Description lists the items, one per line.
	Description string

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64
}

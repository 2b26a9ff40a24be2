// Package api defines the wire messages and Connect bindings of the
// splitpay.v1.BalanceService. Messages are plain Go structs carried by a
// JSON codec; amounts in responses are decimal strings with two places.
package api

// Item is a line item as sent by clients. Price may be a JSON number or a
// numeric string such as "12.50" or "$1,299.00".
type Item struct {
	Name   string   `json:"name"`
	Price  any      `json:"price"`
	Owners []string `json:"owners"`
}

// Purchase is one payer and their items.
type Purchase struct {
	PaidBy string `json:"paid_by"`
	Items  []Item `json:"items"`
}

// SkippedItem is an item that contributed nothing to the balances.
type SkippedItem struct {
	Purchase int    `json:"purchase"`
	Item     int    `json:"item"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Transaction is a recorded summary of a purchase.
type Transaction struct {
	ID          string `json:"id"`
	Payer       string `json:"payer"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

type CalculateBalancesRequest struct {
	PaidBy string `json:"paid_by"`
	Items  []Item `json:"items"`

	// Viewer is the participant looking at the result. When set, the
	// response carries how much everyone else owes them.
	Viewer string `json:"viewer,omitempty"`

	// Record stores a transaction for the amount owed to the viewer when
	// the viewer is the payer.
	Record bool `json:"record,omitempty"`

	// AssignTax gives tax lines to everyone who owns another item.
	AssignTax bool `json:"assign_tax,omitempty"`
}

type CalculateBalancesResponse struct {
	Balances      map[string]string `json:"balances"`
	Skipped       []SkippedItem     `json:"skipped,omitempty"`
	Transfers     []Transfer        `json:"transfers,omitempty"`
	OwedToViewer  string            `json:"owed_to_viewer,omitempty"`
	TransactionID string            `json:"transaction_id,omitempty"`
}

type CalculateBatchRequest struct {
	Purchases []Purchase `json:"purchases"`
}

type CalculateBatchResponse struct {
	Balances  map[string]string `json:"balances"`
	Skipped   []SkippedItem     `json:"skipped,omitempty"`
	Transfers []Transfer        `json:"transfers,omitempty"`
}

type SaveTransactionRequest struct {
	Payer string `json:"payer"`
	Items []Item `json:"items"`
}

type SaveTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type GetTransactionRequest struct {
	ID string `json:"id"`
}

type GetTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	Payer string `json:"payer"`
	Limit int32  `json:"limit,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct{}

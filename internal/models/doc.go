// Package models defines the persisted records of splitpay.
//
// Balances themselves are never stored: they are recomputed from purchases by
// the calculator package on every request. What is stored is a history of
// transactions, short summaries written after a purchase has been split:
//   - Transaction: who paid, how much, and the itemized description
//
// Participants are opaque strings (an email or a username) and are not
// modeled here.
package models

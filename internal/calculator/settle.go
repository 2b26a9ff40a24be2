package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is a payment that clears part of the balances.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

type position struct {
	name   string
	amount decimal.Decimal // always positive
}

// SuggestTransfers returns payments that bring every balance to zero.
//
// Algorithm:
// - Debtors are the participants with a positive balance, creditors those with a negative one
// - Both sides are sorted by amount, largest first, then by name
// - Greedy: the current debtor pays the current creditor the smaller of the two amounts
//
// The result has at most len(debtors)+len(creditors)-1 transfers.
func SuggestTransfers(balances Balances) []Transfer {
	var debtors, creditors []position
	for _, name := range balances.Participants() {
		amount := balances[name]
		switch {
		case amount.IsPositive():
			debtors = append(debtors, position{name: name, amount: amount})
		case amount.IsNegative():
			creditors = append(creditors, position{name: name, amount: amount.Neg()})
		}
	}
	byAmount := func(ps []position) {
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].amount.GreaterThan(ps[j].amount)
		})
	}
	byAmount(debtors)
	byAmount(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}

	return transfers
}

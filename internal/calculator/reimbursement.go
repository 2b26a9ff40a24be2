package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OwedTo sums what everyone except viewer owes. It is what the viewer gets
// back when they paid for the purchase.
func OwedTo(viewer string, balances Balances) decimal.Decimal {
	total := decimal.Zero
	for p, amount := range balances {
		if p == viewer || !amount.IsPositive() {
			continue
		}
		total = total.Add(amount)
	}
	return total
}

// TotalPrice sums the prices of the items that would be counted.
func TotalPrice(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Price.IsPositive() {
			total = total.Add(item.Price)
		}
	}
	return total.Round(centPlaces)
}

// DescribeItems renders one line per item, e.g.
//
//	Pizza ($30.00) split between: alice, bob
func DescribeItems(items []LineItem) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%s ($%s) split between: %s",
			item.Name, item.Price.StringFixed(centPlaces), strings.Join(item.Owners, ", "))
	}
	return strings.Join(lines, "\n")
}

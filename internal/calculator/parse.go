package calculator

import "errors"

// RawItem is a line item as it arrives from an untrusted source, with the
// price not yet coerced.
type RawItem struct {
	Name   string
	Price  any
	Owners []string
}

// RawPurchase is a purchase made of RawItems.
type RawPurchase struct {
	PaidBy string
	Items  []RawItem
}

// ParsePurchases coerces raw purchases into typed ones. Prices go through
// ParsePrice; non-numeric and negative prices and missing payers come back
// as a *ValidationError pointing at the offending purchase and item.
func ParsePurchases(raw []RawPurchase) ([]Purchase, error) {
	purchases := make([]Purchase, len(raw))
	for i, rp := range raw {
		if rp.PaidBy == "" {
			return nil, &ValidationError{Purchase: i, Item: -1, Field: "paid_by", Reason: "must not be empty"}
		}
		items := make([]LineItem, len(rp.Items))
		for j, ri := range rp.Items {
			price, err := ParsePrice(ri.Price)
			if err != nil {
				reason := err.Error()
				if errors.Is(err, ErrNotNumeric) {
					reason = "must be numeric"
				}
				return nil, &ValidationError{Purchase: i, Item: j, Field: "price", Reason: reason}
			}
			if price.IsNegative() {
				return nil, &ValidationError{Purchase: i, Item: j, Field: "price", Reason: "must not be negative"}
			}
			items[j] = LineItem{Name: ri.Name, Price: price, Owners: ri.Owners}
		}
		purchases[i] = Purchase{PaidBy: rp.PaidBy, Items: items}
	}
	return purchases, nil
}

// ParsePurchase is the single-purchase form of ParsePurchases.
func ParsePurchase(raw RawPurchase) (Purchase, error) {
	purchases, err := ParsePurchases([]RawPurchase{raw})
	if err != nil {
		return Purchase{}, err
	}
	return purchases[0], nil
}

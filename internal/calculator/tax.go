package calculator

import "strings"

// TaxItemName is the name receipt parsing gives to the tax line.
const TaxItemName = "tax"

// IsTax reports whether the item is the receipt's tax line.
func IsTax(item LineItem) bool {
	return strings.EqualFold(strings.TrimSpace(item.Name), TaxItemName)
}

// AssignTaxOwners returns a copy of items in which every tax line is owned by
// everyone who owns a non-tax line, in first-seen order. Tax is then split
// evenly like any other item. Non-tax items are returned unchanged.
func AssignTaxOwners(items []LineItem) []LineItem {
	var owners []string
	seen := make(map[string]struct{})
	for _, item := range items {
		if IsTax(item) {
			continue
		}
		for _, o := range item.Owners {
			if _, ok := seen[o]; ok {
				continue
			}
			seen[o] = struct{}{}
			owners = append(owners, o)
		}
	}

	out := make([]LineItem, len(items))
	for i, item := range items {
		if IsTax(item) {
			item.Owners = append([]string(nil), owners...)
		}
		out[i] = item
	}
	return out
}

package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// centPlaces is the display and rounding granularity of every balance.
	centPlaces = 2

	// divisionPlaces bounds the precision of a per-owner split before the
	// final rounding.
	divisionPlaces = 16

	// remainderPlaces is the precision used when ranking participants for the
	// residual cent, so that division noise never decides a tie.
	remainderPlaces = 8
)

var cent = decimal.New(1, -centPlaces)

// LineItem is a priced entry of a purchase. Price is the total cost of the
// item and is divided evenly among Owners.
type LineItem struct {
	Name   string
	Price  decimal.Decimal
	Owners []string
}

// Purchase is one payment event: PaidBy fronted the money for Items.
type Purchase struct {
	PaidBy string
	Items  []LineItem
}

// Balances maps a participant to their signed net balance.
// Positive means the participant owes money, negative means they are owed.
type Balances map[string]decimal.Decimal

// Sum returns the total of all balances.
func (b Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Participants returns the participant identifiers in lexical order.
func (b Balances) Participants() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report is the full result of a computation.
type Report struct {
	Balances Balances

	// Skipped lists the items that contributed nothing.
	Skipped []SkippedItem

	// Order lists participants in the order they were first encountered.
	Order []string
}

// ComputeBalances returns the net balance of every participant across all
// purchases. See Compute for the rules.
func ComputeBalances(purchases []Purchase) (Balances, error) {
	report, err := Compute(purchases)
	if err != nil {
		return nil, err
	}
	return report.Balances, nil
}

// ComputeBalance is the single-purchase form of ComputeBalances.
func ComputeBalance(purchase Purchase) (Balances, error) {
	return ComputeBalances([]Purchase{purchase})
}

// NetSettlementFor returns how much participant owes (positive) or is owed
// (negative). Participants absent from balances settle at zero.
func NetSettlementFor(participant string, balances Balances) decimal.Decimal {
	return balances[participant]
}

// Compute validates the purchases and accumulates balances.
//
// For every item with a positive price and at least one owner, each owner is
// charged price/len(owners), the payer included, and the payer is credited
// the full price. Items without owners or with a zero price are skipped and
// reported. Totals are rounded to cents once, after all purchases, and any
// residual cent left by that rounding is handed out so the balances sum to
// exactly zero.
//
// Every payer and every owner appears in the result, even one whose only
// item was skipped.
func Compute(purchases []Purchase) (*Report, error) {
	if err := Validate(purchases); err != nil {
		return nil, err
	}

	l := newLedger()
	var skipped []SkippedItem

	for i, purchase := range purchases {
		l.register(purchase.PaidBy)

		for j, item := range purchase.Items {
			owners := uniqueOwners(item.Owners)
			for _, owner := range owners {
				l.register(owner)
			}
			if len(owners) == 0 {
				skipped = append(skipped, SkippedItem{Purchase: i, Item: j, Name: item.Name, Reason: SkipNoOwners})
				continue
			}
			if !item.Price.IsPositive() {
				skipped = append(skipped, SkippedItem{Purchase: i, Item: j, Name: item.Name, Reason: SkipZeroPrice})
				continue
			}

			split := item.Price.DivRound(decimal.NewFromInt(int64(len(owners))), divisionPlaces)
			for _, owner := range owners {
				l.add(owner, split)
			}
			l.add(purchase.PaidBy, item.Price.Neg())
		}
	}

	return &Report{
		Balances: l.rounded(),
		Skipped:  skipped,
		Order:    l.order,
	}, nil
}

// Validate checks the purchases without computing anything.
func Validate(purchases []Purchase) error {
	for i, purchase := range purchases {
		if purchase.PaidBy == "" {
			return &ValidationError{Purchase: i, Item: -1, Field: "paid_by", Reason: "must not be empty"}
		}
		for j, item := range purchase.Items {
			if item.Price.IsNegative() {
				return &ValidationError{Purchase: i, Item: j, Field: "price", Reason: "must not be negative"}
			}
			for _, owner := range item.Owners {
				if owner == "" {
					return &ValidationError{Purchase: i, Item: j, Field: "owners", Reason: "must not contain an empty identifier"}
				}
			}
		}
	}
	return nil
}

// uniqueOwners drops repeated owners, keeping first occurrences.
func uniqueOwners(owners []string) []string {
	if len(owners) < 2 {
		return owners
	}
	seen := make(map[string]struct{}, len(owners))
	out := make([]string, 0, len(owners))
	for _, o := range owners {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

// ledger holds unrounded running totals.
type ledger struct {
	totals map[string]decimal.Decimal
	order  []string
}

func newLedger() *ledger {
	return &ledger{totals: make(map[string]decimal.Decimal)}
}

func (l *ledger) register(participant string) {
	if _, ok := l.totals[participant]; ok {
		return
	}
	l.totals[participant] = decimal.Zero
	l.order = append(l.order, participant)
}

func (l *ledger) add(participant string, amount decimal.Decimal) {
	l.register(participant)
	l.totals[participant] = l.totals[participant].Add(amount)
}

// rounded rounds every total to cents and then moves the residual, one cent
// per participant, onto those whose rounding went furthest against it.
// Ties go to whoever was registered first.
func (l *ledger) rounded() Balances {
	out := make(Balances, len(l.totals))
	residual := decimal.Zero
	for _, p := range l.order {
		r := l.totals[p].Round(centPlaces)
		out[p] = r
		residual = residual.Sub(r)
	}
	if residual.IsZero() {
		return out
	}

	step := cent
	if residual.IsNegative() {
		step = cent.Neg()
	}
	count := int(residual.Div(step).IntPart())

	gap := func(p string) decimal.Decimal {
		d := l.totals[p].Sub(out[p])
		if step.IsNegative() {
			d = d.Neg()
		}
		return d.Round(remainderPlaces)
	}

	candidates := make([]string, len(l.order))
	copy(candidates, l.order)
	sort.SliceStable(candidates, func(a, b int) bool {
		return gap(candidates[a]).GreaterThan(gap(candidates[b]))
	})

	for k := 0; k < count && k < len(candidates); k++ {
		p := candidates[k]
		out[p] = out[p].Add(step)
	}
	return out
}

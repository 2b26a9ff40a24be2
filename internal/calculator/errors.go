package calculator

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports malformed input. Purchase is the index of the
// offending purchase in the batch; Item is the index of the offending item,
// or -1 when the problem is on the purchase itself.
type ValidationError struct {
	Purchase int
	Item     int
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("purchase %d: %s: %s", e.Purchase, e.Field, e.Reason)
	}
	return fmt.Sprintf("purchase %d item %d: %s: %s", e.Purchase, e.Item, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SkipReason says why an item did not contribute to the balances.
type SkipReason string

const (
	SkipNoOwners  SkipReason = "no_owners"
	SkipZeroPrice SkipReason = "zero_price"
)

// SkippedItem is a no-op item. It is reported, never raised.
type SkippedItem struct {
	Purchase int
	Item     int
	Name     string
	Reason   SkipReason
}

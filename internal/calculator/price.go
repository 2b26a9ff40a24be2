package calculator

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotNumeric is returned by ParsePrice for values that cannot be read as a number.
var ErrNotNumeric = errors.New("price is not numeric")

// maxPriceExponent bounds the magnitude of a price: anything at or above
// 10^maxPriceExponent is not a currency amount.
const maxPriceExponent = 15

var maxPrice = decimal.New(1, maxPriceExponent)

// ParsePrice coerces a loosely typed price into a decimal.
//
// Accepted inputs are decimals, Go integer and float types, and numeric-like
// strings such as " 12.50", "$1,299.99" or "1e2". A nil price is treated as 0,
// which makes the item a skipped zero-price item. NaN and infinities are
// rejected, as are values with more than 16 fractional digits or a magnitude
// of 1e15 or more. The sign is not checked here; callers reject negatives.
func ParsePrice(v any) (decimal.Decimal, error) {
	p, err := parsePrice(v)
	if err != nil {
		return decimal.Zero, err
	}
	if !inPriceRange(p) {
		return decimal.Zero, fmt.Errorf("%w: %v out of range", ErrNotNumeric, v)
	}
	return p, nil
}

// inPriceRange checks the exponent before comparing magnitudes, since
// comparison rescales both operands to the smaller exponent.
func inPriceRange(p decimal.Decimal) bool {
	if p.Exponent() < -divisionPlaces || p.Exponent() >= maxPriceExponent {
		return false
	}
	return p.Abs().LessThan(maxPrice)
}

func parsePrice(v any) (decimal.Decimal, error) {
	switch p := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return p, nil
	case *decimal.Decimal:
		if p == nil {
			return decimal.Zero, nil
		}
		return *p, nil
	case int:
		return decimal.NewFromInt(int64(p)), nil
	case int32:
		return decimal.NewFromInt32(p), nil
	case int64:
		return decimal.NewFromInt(p), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(p), 0), nil
	case float32:
		return fromFloat(float64(p))
	case float64:
		return fromFloat(p)
	case string:
		return parsePriceString(p)
	case fmt.Stringer:
		// json.Number and friends.
		return parsePriceString(p.String())
	default:
		return decimal.Zero, fmt.Errorf("%w: unsupported type %T", ErrNotNumeric, v)
	}
}

func fromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNotNumeric, f)
	}
	return decimal.NewFromFloat(f), nil
}

func parsePriceString(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(cleaned, "-") {
		neg = true
		cleaned = strings.TrimSpace(cleaned[1:])
	}
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if neg && strings.ContainsAny(cleaned[:1], "+-") {
		return decimal.Zero, fmt.Errorf("%w: %q has more than one sign", ErrNotNumeric, s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

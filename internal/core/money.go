// Package core provides the cash-change domain: amounts, denomination sets,
// input validation and the minimum-count change breakdown.
//
// This file contains the Amount type used for bill and cash values. Amounts
// are exact decimals; a malformed input becomes the "not a number" amount
// instead of an error so that callers can report it as a validation reason.
package core

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in the configured currency.
// The zero value is a valid amount of 0.
type Amount struct {
	value decimal.Decimal
	nan   bool
}

// NaN is the amount produced by empty or malformed input.
var NaN = Amount{nan: true}

// MaxUnits bounds the whole-unit magnitude of amounts the register handles.
// Validate rejects anything at or above it, which keeps every change
// amount well inside int64.
const MaxUnits int64 = 1_000_000_000_000_000

var maxAmount = decimal.NewFromInt(MaxUnits)

// ParseAmount converts user input to an Amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// surrounding whitespace. A comma is always a decimal separator, never a
// thousands separator, so "1,000" is 1. Anything that is not a plain decimal
// number yields NaN; ParseAmount never fails.
//
// Examples:
//
//	ParseAmount("237")     -> 237
//	ParseAmount(" 100,50") -> 100.50
//	ParseAmount("1,000")   -> 1
//	ParseAmount("abc")     -> NaN
//	ParseAmount("")        -> NaN
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return NaN
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return NaN
	}
	// decimal accepts exponents; form input never carries them
	if strings.ContainsAny(s, "eE") {
		return NaN
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return NaN
	}
	return Amount{value: d}
}

// AmountFromFloat converts a float to an Amount. NaN and infinities map to NaN.
func AmountFromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NaN
	}
	return Amount{value: decimal.NewFromFloat(f)}
}

// AmountFromInt returns the Amount for a whole number of currency units.
func AmountFromInt(units int64) Amount {
	return Amount{value: decimal.NewFromInt(units)}
}

// IsNaN reports whether a is the "not a number" amount.
func (a Amount) IsNaN() bool {
	return a.nan
}

// IsPositive reports whether a is a number strictly greater than zero.
func (a Amount) IsPositive() bool {
	return !a.nan && a.value.IsPositive()
}

// InRange reports whether a is a number whose magnitude is below MaxUnits.
func (a Amount) InRange() bool {
	return !a.nan && a.value.Abs().LessThan(maxAmount)
}

// Decimal returns the underlying decimal. It is zero for NaN.
func (a Amount) Decimal() decimal.Decimal {
	if a.nan {
		return decimal.Zero
	}
	return a.value
}

// Cmp compares two numeric amounts: -1 if a < b, 0 if equal, +1 if a > b.
// Comparing NaN is meaningless; callers check IsNaN first.
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(b.value)
}

// Equal reports whether both amounts are numbers with the same value.
func (a Amount) Equal(b Amount) bool {
	if a.nan || b.nan {
		return false
	}
	return a.value.Equal(b.value)
}

// Sub returns a - b. The result is NaN if either operand is NaN.
func (a Amount) Sub(b Amount) Amount {
	if a.nan || b.nan {
		return NaN
	}
	return Amount{value: a.value.Sub(b.value)}
}

// Units returns the amount truncated toward zero to whole currency units,
// and the fractional part that truncation dropped. NaN and amounts that are
// not InRange give 0 and a zero fraction.
func (a Amount) Units() (int64, Amount) {
	if !a.InRange() {
		return 0, Amount{}
	}
	whole := a.value.Truncate(0)
	return whole.IntPart(), Amount{value: a.value.Sub(whole)}
}

// Fixed formats the amount with two decimals ("263.00"). NaN formats as "NaN".
func (a Amount) Fixed() string {
	if a.nan {
		return "NaN"
	}
	return a.value.StringFixed(2)
}

// String implements fmt.Stringer with the shortest exact representation.
func (a Amount) String() string {
	if a.nan {
		return "NaN"
	}
	return a.value.String()
}

// MarshalJSON encodes numbers as decimal strings and NaN as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.nan {
		return []byte("null"), nil
	}
	return json.Marshal(a.value.StringFixed(2))
}

// Change returns cash - bill, the value to be broken down.
func Change(bill, cash Amount) Amount {
	return cash.Sub(bill)
}

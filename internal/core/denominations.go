package core

import (
	"fmt"
	"strconv"
	"strings"
)

// DenominationSet is an ordered, strictly descending list of face values
// ending with 1. Construct it with NewDenominationSet.
type DenominationSet struct {
	values []int64

	// nonCanonical is computed once at construction; the zero value is canonical.
	nonCanonical bool
}

// MaxDenomination bounds the largest face value. It keeps the canonical
// check below a few megabytes of work.
const MaxDenomination int64 = 1_000_000

// DefaultDenominations returns the Indian Rupee notes and coins.
func DefaultDenominations() DenominationSet {
	return newDenominationSet([]int64{2000, 500, 200, 100, 50, 20, 10, 5, 2, 1})
}

func newDenominationSet(values []int64) DenominationSet {
	return DenominationSet{values: values, nonCanonical: !greedyIsOptimal(values)}
}

// NewDenominationSet validates values and returns the set.
func NewDenominationSet(values ...int64) (DenominationSet, error) {
	if len(values) == 0 {
		return DenominationSet{}, ErrEmptyDenominations
	}
	if values[0] > MaxDenomination {
		return DenominationSet{}, fmt.Errorf("%w: got %d, max %d", ErrDenominationTooLarge, values[0], MaxDenomination)
	}
	for i, v := range values {
		if v <= 0 {
			return DenominationSet{}, fmt.Errorf("%w: got %d", ErrNonPositiveDenomination, v)
		}
		if i > 0 && v >= values[i-1] {
			return DenominationSet{}, fmt.Errorf("%w: %d follows %d", ErrDenominationOrder, v, values[i-1])
		}
	}
	if values[len(values)-1] != 1 {
		return DenominationSet{}, ErrMissingUnitDenomination
	}
	owned := make([]int64, len(values))
	copy(owned, values)
	return newDenominationSet(owned), nil
}

// ParseDenominationSet parses a comma separated list such as "500,100,10,1".
func ParseDenominationSet(s string) (DenominationSet, error) {
	var values []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return DenominationSet{}, fmt.Errorf("parse denomination %q: %w", part, err)
		}
		values = append(values, v)
	}
	return NewDenominationSet(values...)
}

// Values returns a copy of the denominations in descending order.
func (s DenominationSet) Values() []int64 {
	out := make([]int64, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of denominations.
func (s DenominationSet) Len() int {
	return len(s.values)
}

// String returns the set in the same comma separated form ParseDenominationSet reads.
func (s DenominationSet) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}

// IsCanonical reports whether the greedy breakdown uses the fewest pieces for
// every amount. The result is computed when the set is built.
func (s DenominationSet) IsCanonical() bool {
	return !s.nonCanonical
}

// greedyIsOptimal compares greedy counts with the optimum for every amount
// below the sum of the two largest denominations; a smallest counterexample,
// if any, lies in that range (Kozen and Zaks). values must be a validated
// set, so the range is bounded by 2*MaxDenomination.
func greedyIsOptimal(values []int64) bool {
	if len(values) < 3 {
		return true
	}
	limit := values[0] + values[1]
	optimal := make([]int64, limit)
	for amount := int64(1); amount < limit; amount++ {
		best := int64(-1)
		for _, d := range values {
			if d > amount {
				continue
			}
			if c := optimal[amount-d] + 1; best < 0 || c < best {
				best = c
			}
		}
		optimal[amount] = best
		if greedyCount(amount, values) != best {
			return false
		}
	}
	return true
}

func greedyCount(amount int64, values []int64) int64 {
	var count int64
	for _, d := range values {
		count += amount / d
		amount %= d
	}
	return count
}

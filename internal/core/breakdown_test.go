package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownScenarios(t *testing.T) {
	tests := []struct {
		name    string
		change  Amount
		entries []Entry
		total   int64
		dropped string
	}{
		{
			name:   "263",
			change: AmountFromInt(263),
			entries: []Entry{
				{200, 1, 200}, {50, 1, 50}, {10, 1, 10}, {2, 1, 2}, {1, 1, 1},
			},
			total:   5,
			dropped: "0.00",
		},
		{
			name:   "99.50 drops the fraction",
			change: ParseAmount("99.50"),
			entries: []Entry{
				{50, 1, 50}, {20, 2, 40}, {5, 1, 5}, {2, 2, 4},
			},
			total:   6,
			dropped: "0.50",
		},
		{
			name:    "4000",
			change:  AmountFromInt(4000),
			entries: []Entry{{2000, 2, 4000}},
			total:   2,
			dropped: "0.00",
		},
		{
			name:    "below one unit",
			change:  ParseAmount("0.99"),
			entries: []Entry{},
			total:   0,
			dropped: "0.99",
		},
		{
			name:    "zero",
			change:  AmountFromInt(0),
			entries: []Entry{},
			total:   0,
			dropped: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Breakdown(tt.change, DefaultDenominations())
			assert.Equal(t, tt.entries, got.Entries)
			assert.Equal(t, tt.total, got.TotalNoteCount)
			assert.Equal(t, tt.dropped, got.Dropped.Fixed())
		})
	}
}

func TestBreakdownInvariants(t *testing.T) {
	set := DefaultDenominations()
	for amount := int64(0); amount <= 5000; amount += 7 {
		got := Breakdown(AmountFromInt(amount), set)

		var sum, count int64
		prev := int64(-1)
		for _, e := range got.Entries {
			require.Positive(t, e.Count, "amount %d", amount)
			require.Equal(t, e.Denomination*e.Count, e.Subtotal)
			if prev >= 0 {
				require.Less(t, e.Denomination, prev, "amount %d not descending", amount)
			}
			prev = e.Denomination
			sum += e.Subtotal
			count += e.Count
		}
		require.Equal(t, amount, sum)
		require.Equal(t, count, got.TotalNoteCount)
		require.Equal(t, amount, got.Amount)
	}
}

func TestBreakdownIsIdempotent(t *testing.T) {
	set := DefaultDenominations()
	change := ParseAmount("1887.75")
	first := Breakdown(change, set)
	second := Breakdown(change, set)
	assert.Equal(t, first, second)
	assert.Equal(t, "2000,500,200,100,50,20,10,5,2,1", set.String())
}

func TestBreakdownIgnoresInvalidAmounts(t *testing.T) {
	for _, change := range []Amount{NaN, AmountFromInt(-20)} {
		got := Breakdown(change, DefaultDenominations())
		assert.True(t, got.IsEmpty())
		assert.Zero(t, got.TotalNoteCount)
	}
}

func TestBreakdownCustomSet(t *testing.T) {
	set, err := NewDenominationSet(25, 10, 5, 1)
	require.NoError(t, err)
	got := Breakdown(AmountFromInt(41), set)
	assert.Equal(t, []Entry{{25, 1, 25}, {10, 1, 10}, {5, 1, 5}, {1, 1, 1}}, got.Entries)
	assert.Equal(t, int64(4), got.TotalNoteCount)
}

func TestBreakdownOutOfRange(t *testing.T) {
	for _, raw := range []string{"100000000000000000000", "18446744073709551616", "1000000000000000"} {
		b := Breakdown(ParseAmount(raw), DefaultDenominations())
		assert.True(t, b.IsEmpty(), raw)
		assert.Zero(t, b.Amount, raw)
	}
}

func TestSettleLargestChangeKeepsSum(t *testing.T) {
	register := Register{Currency: INR, Denominations: DefaultDenominations()}

	s := register.Settle(AmountFromInt(1), ParseAmount("999999999999999.99"))
	require.Equal(t, Accepted, s.Validation.Outcome)
	require.NotNil(t, s.Breakdown)
	assert.Equal(t, int64(999999999999998), s.Breakdown.Amount)

	var sum int64
	for _, e := range s.Breakdown.Entries {
		sum += e.Subtotal
	}
	assert.Equal(t, s.Breakdown.Amount, sum)
	assert.Equal(t, "0.99", s.Breakdown.Dropped.Fixed())

	s = register.Settle(AmountFromInt(1), ParseAmount("100000000000000000000"))
	assert.Equal(t, Rejected, s.Validation.Outcome)
	assert.Nil(t, s.Breakdown)
}

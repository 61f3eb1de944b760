package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle(t *testing.T) {
	reg := Register{Currency: INR, Denominations: DefaultDenominations()}

	t.Run("accepted", func(t *testing.T) {
		s := reg.Settle(ParseAmount("237"), ParseAmount("500"))
		require.Equal(t, Accepted, s.Validation.Outcome)
		require.NotNil(t, s.Breakdown)
		assert.Equal(t, "263.00", s.Change.Fixed())
		assert.Equal(t, int64(5), s.Breakdown.TotalNoteCount)
		assert.Equal(t, "Change calculated successfully! Return ₹263.00 to the customer.", s.Notice(INR))
	})

	t.Run("fractional change", func(t *testing.T) {
		s := reg.Settle(ParseAmount("100.50"), ParseAmount("200"))
		require.NotNil(t, s.Breakdown)
		assert.Equal(t, "99.50", s.Change.Fixed())
		assert.Equal(t, int64(99), s.Breakdown.Amount)
		assert.Equal(t, int64(6), s.Breakdown.TotalNoteCount)
		assert.Equal(t, "0.50", s.Breakdown.Dropped.Fixed())
	})

	t.Run("exact payment", func(t *testing.T) {
		s := reg.Settle(ParseAmount("100"), ParseAmount("100"))
		assert.Equal(t, ExactPayment, s.Validation.Outcome)
		assert.Nil(t, s.Breakdown)
		assert.Equal(t, "Exact amount paid! No change to return.", s.Notice(INR))
	})

	t.Run("rejected", func(t *testing.T) {
		s := reg.Settle(ParseAmount(""), ParseAmount("0"))
		assert.Equal(t, Rejected, s.Validation.Outcome)
		assert.Nil(t, s.Breakdown)
		assert.True(t, s.Change.IsNaN())
		assert.True(t, s.Validation.Has(InvalidBillAmount))
		assert.True(t, s.Validation.Has(InvalidCashAmount))
	})
}

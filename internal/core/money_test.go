package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		nan bool
	}{
		{"1", "1", false},
		{"237", "237", false},
		{"100.50", "100.5", false},
		{"100,50", "100.5", false},
		{" 2.50 ", "2.5", false},
		{"0", "0", false},
		{"-5", "-5", false},
		{"abc", "", true},
		{"1.2.3", "", true},
		{"1e3", "", true},
		{"", "", true},
		{"   ", "", true},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		if tc.nan {
			assert.True(t, got.IsNaN(), "%q should be NaN", tc.in)
			continue
		}
		require.False(t, got.IsNaN(), "%q should parse", tc.in)
		assert.Equal(t, tc.out, got.String(), "input %q", tc.in)
	}
}

func TestAmountFromFloat(t *testing.T) {
	assert.True(t, AmountFromFloat(math.NaN()).IsNaN())
	assert.True(t, AmountFromFloat(math.Inf(1)).IsNaN())
	assert.True(t, AmountFromFloat(math.Inf(-1)).IsNaN())
	assert.Equal(t, "99.5", AmountFromFloat(99.5).String())
}

func TestChangeIsExact(t *testing.T) {
	// 3.3 - 1.3 is 1.9999999999999998 in binary floating point
	change := Change(ParseAmount("1.3"), ParseAmount("3.3"))
	units, dropped := change.Units()
	assert.Equal(t, int64(2), units)
	assert.Equal(t, "0.00", dropped.Fixed())
}

func TestUnitsTruncatesTowardZero(t *testing.T) {
	units, dropped := ParseAmount("99.50").Units()
	assert.Equal(t, int64(99), units)
	assert.Equal(t, "0.50", dropped.Fixed())

	units, _ = ParseAmount("-1.5").Units()
	assert.Equal(t, int64(-1), units)

	units, dropped = NaN.Units()
	assert.Zero(t, units)
	assert.Equal(t, "0.00", dropped.Fixed())
}

func TestSubPropagatesNaN(t *testing.T) {
	assert.True(t, NaN.Sub(AmountFromInt(1)).IsNaN())
	assert.True(t, AmountFromInt(1).Sub(NaN).IsNaN())
	assert.False(t, NaN.Equal(NaN))
}

func TestAmountJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}{A: ParseAmount("263"), B: NaN})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"263.00","b":null}`, string(out))
}

func TestParseAmountCommaIsDecimalSeparator(t *testing.T) {
	assert.True(t, ParseAmount("1,000").Equal(AmountFromInt(1)))
	assert.True(t, ParseAmount("1,000.50").IsNaN())
}

func TestAmountInRange(t *testing.T) {
	assert.True(t, ParseAmount("999999999999999.99").InRange())
	assert.True(t, AmountFromInt(-5).InRange())
	assert.False(t, AmountFromInt(MaxUnits).InRange())
	assert.False(t, ParseAmount("100000000000000000000").InRange())
	assert.False(t, NaN.InRange())

	units, dropped := ParseAmount("100000000000000000000").Units()
	assert.Zero(t, units)
	assert.True(t, dropped.Equal(Amount{}))
}

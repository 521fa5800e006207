package codec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad test integer %s", s)
	return n
}

func TestToDecimalString(t *testing.T) {
	tests := []struct {
		raw      string
		decimals int
		want     string
	}{
		{"1000000000000000000", 18, "1"},
		{"500000000000000000", 18, "0.5"},
		{"0", 18, "0"},
		{"1", 18, "0.000000000000000001"},
		{"2000500000000000000000", 18, "2000.5"},
		{"123456", 0, "123456"},
		{"123456", 3, "123.456"},
		{"120000", 3, "120"},
		{"-1500000000000000000", 18, "-1.5"},
		{"-500000000000000000", 18, "-0.5"},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", 18,
			"115792089237316195423570985008687907853269984665640564039457.584007913129639935"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDecimalString(mustBig(t, tt.raw), tt.decimals))
		})
	}
}

func TestToPaddedDecimalString(t *testing.T) {
	assert.Equal(t, "1.500000000000000000", ToPaddedDecimalString(mustBig(t, "1500000000000000000"), 18))
	assert.Equal(t, "0.000000000000000000", ToPaddedDecimalString(big.NewInt(0), 18))
	assert.Equal(t, "-0.050", ToPaddedDecimalString(big.NewInt(-50), 3))
	assert.Equal(t, "7", ToPaddedDecimalString(big.NewInt(7), 0))
}

func TestToRawInteger(t *testing.T) {
	tests := []struct {
		in       string
		decimals int
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{".5", 18, "500000000000000000"},
		{"1.", 18, "1000000000000000000"},
		{"0", 18, "0"},
		{"-0.25", 2, "-25"},
		{"-0", 2, "0"},
		{"+3.1", 1, "31"},
		// excess precision is truncated, not rounded
		{"1.2399", 2, "123"},
		{"0.0000001", 6, "0"},
		{"42", 0, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToRawInteger(tt.in, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToRawIntegerMalformed(t *testing.T) {
	for _, in := range []string{"", ".", "-", "1.2.3", "abc", "1e18", "1,000", "0x10", "1. 5", "--1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ToRawInteger(in, 18)
			require.Error(t, err)
			var fe *FormatError
			assert.True(t, errors.As(err, &fe), "expected FormatError, got %T", err)
		})
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	values := []string{
		"0", "1", "9", "10", "999999", "1000000000000000000", "500000000000000000",
		"123456789012345678901234567890", "100000000000000000000000000000000000001",
	}
	for _, v := range values {
		for d := 0; d <= 18; d++ {
			raw := mustBig(t, v)
			got, err := ToRawInteger(ToDecimalString(raw, d), d)
			require.NoError(t, err)
			require.Equal(t, 0, raw.Cmp(got), "value %s decimals %d", v, d)

			padded, err := ToRawInteger(ToPaddedDecimalString(raw, d), d)
			require.NoError(t, err)
			require.Equal(t, 0, raw.Cmp(padded), "padded value %s decimals %d", v, d)
		}
	}
}

func TestDecimalValueParts(t *testing.T) {
	v := NewDecimalValue(mustBig(t, "-1234500"), 4)
	assert.True(t, v.Negative)
	assert.Equal(t, "123", v.IntegerPart.String())
	assert.Equal(t, "4500", v.FractionalDigits)
	assert.Equal(t, 4, v.Decimals())
	assert.Equal(t, "-123.45", v.String())
	assert.Equal(t, "-1234500", v.Raw().String())

	parsed, err := ParseDecimal("-123.45", 4)
	require.NoError(t, err)
	assert.Equal(t, v.Padded(), parsed.Padded())
}

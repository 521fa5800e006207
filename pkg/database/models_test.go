package database

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntScan(t *testing.T) {
	huge, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	cases := []struct {
		in   any
		want *big.Int
	}{
		{nil, big.NewInt(0)},
		{int64(42), big.NewInt(42)},
		{[]byte("2000500000000000000000"), mustBig(t, "2000500000000000000000")},
		{huge.String(), huge},
		{"-1500000000000000000", big.NewInt(-1500000000000000000)},
	}
	for _, tc := range cases {
		var b BigInt
		require.NoError(t, b.Scan(tc.in))
		assert.Equal(t, 0, tc.want.Cmp(b.Int), "%v", tc.in)
	}

	var b BigInt
	assert.Error(t, b.Scan("12.5"))
	assert.Error(t, b.Scan(3.14))
}

func TestBigIntValue(t *testing.T) {
	v, err := BigInt{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "0", v)

	v, err = NewBigInt(mustBig(t, "2000500000000000000000")).Value()
	require.NoError(t, err)
	assert.Equal(t, "2000500000000000000000", v)
}

func TestFeedSnapshotSameState(t *testing.T) {
	a := NewFeedSnapshot(1, mustBig(t, "2000500000000000000000"), 1700000000)
	b := NewFeedSnapshot(1, mustBig(t, "2000500000000000000000"), 1700000000)
	assert.True(t, a.SameState(b))

	c := NewFeedSnapshot(1, mustBig(t, "2000500000000000000000"), 1700000060)
	assert.False(t, a.SameState(c))

	d := NewFeedSnapshot(1, mustBig(t, "2001000000000000000000"), 1700000000)
	assert.False(t, a.SameState(d))

	assert.True(t, NewFeedSnapshot(1, nil, 0).SameState(&FeedSnapshot{}))
	assert.Equal(t, a.CreatedAt, a.CheckedAt)
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

package codec

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// 2000.5 * 1e18, then 1700000000
	feedResponse = "0x" +
		"00000000000000000000000000000000000000000000006c7283b6e590f20000" +
		"000000000000000000000000000000000000000000000000000000006553f100"
	// -1.5 * 1e18 sign-extended, then 42
	negativeFeedResponse = "0x" +
		"ffffffffffffffffffffffffffffffffffffffffffffffffeb2eedf284ea0000" +
		"000000000000000000000000000000000000000000000000000000000000002a"
)

func TestDecodeUnsigned(t *testing.T) {
	v, err := DecodeUnsigned(feedResponse, 0)
	require.NoError(t, err)
	assert.Equal(t, "2000500000000000000000", v.String())

	v, err = DecodeUnsigned(feedResponse, 32)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", v.String())

	// the 0x prefix is optional
	v, err = DecodeUnsigned(strings.TrimPrefix(feedResponse, "0x"), 32)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", v.String())
}

func TestDecodeShortResponse(t *testing.T) {
	for _, tt := range []struct {
		resp   string
		offset int
	}{
		{"0x", 0},
		{"", 0},
		{"0x" + strings.Repeat("0", 62), 0},
		{feedResponse, 64},
		{"0x" + strings.Repeat("0", 64), 32},
	} {
		_, err := DecodeUnsigned(tt.resp, tt.offset)
		var de *DecodeError
		require.True(t, errors.As(err, &de), "resp %q offset %d: got %v", tt.resp, tt.offset, err)

		_, err = DecodeUint32At(tt.resp, tt.offset)
		require.True(t, errors.As(err, &de))
	}
}

func TestDecodeMalformed(t *testing.T) {
	var de *DecodeError
	_, err := DecodeUnsigned(feedResponse, 16)
	require.True(t, errors.As(err, &de), "unaligned offset")

	_, err = DecodeUnsigned("0x"+strings.Repeat("z", 64), 0)
	require.True(t, errors.As(err, &de), "non-hex")

	_, err = DecodeUnsigned("0x"+strings.Repeat("0", 65), 0)
	require.True(t, errors.As(err, &de), "odd length")
}

func TestDecodeSigned224(t *testing.T) {
	v, err := DecodeSigned224(feedResponse)
	require.NoError(t, err)
	assert.Equal(t, "2000500000000000000000", v.String())

	v, err = DecodeSigned224(negativeFeedResponse)
	require.NoError(t, err)
	assert.Equal(t, "-1500000000000000000", v.String())
	assert.Equal(t, "-1.5", ToDecimalString(v, 18))

	// 2^223 does not fit in int224
	_, err = DecodeSigned224("0x0000000080000000000000000000000000000000000000000000000000000000")
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Reason, "out of range for int224")

	// -2^223 is the smallest int224
	v, err = DecodeSigned224("0xffffffff80000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 223)), v)
}

func TestDecodeSignedFullWidth(t *testing.T) {
	v, err := DecodeSigned("0x"+strings.Repeat("f", 64), 0, 256)
	require.NoError(t, err)
	assert.Equal(t, "-1", v.String())

	v, err = DecodeSigned("0x8"+strings.Repeat("0", 63), 0, 256)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255)), v)

	v, err = DecodeSigned("0x7"+strings.Repeat("f", 63), 0, 256)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1)), v)
}

func TestDecodeUint32At(t *testing.T) {
	ts, err := DecodeUint32At(feedResponse, DefaultTimestampOffset)
	require.NoError(t, err)
	assert.Equal(t, uint32(1700000000), ts)

	ts, err = DecodeUint32At(negativeFeedResponse, DefaultTimestampOffset)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), ts)

	// wider values are narrowed to their low 32 bits
	ts, err = DecodeUint32At("0x"+strings.Repeat("f", 64), 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffffffff), ts)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 2, WordCount(feedResponse))
	assert.Equal(t, 0, WordCount("0x"))
}

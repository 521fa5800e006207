package codec

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHolder = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"

func TestEncodeAddress(t *testing.T) {
	for _, in := range []string{
		testHolder,
		strings.ToLower(testHolder),
		strings.ToUpper(testHolder[2:]),
	} {
		t.Run(in, func(t *testing.T) {
			word, err := EncodeParameter(Address, in)
			require.NoError(t, err)
			assert.Len(t, word, WordHexLen)
			assert.True(t, strings.HasSuffix(word, "5b38da6a701c568545dcfcb03fcb875f56beddc4"))
			assert.Equal(t, strings.Repeat("0", 24), word[:24])
		})
	}

	word, err := EncodeParameter(Address, common.HexToAddress(testHolder))
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4", word)
}

func TestEncodeAddressMalformed(t *testing.T) {
	for _, in := range []any{"0x1234", "0xZZ38Da6a701c568545dCfcB03FcB875f56beddC4", 42, "", nil} {
		_, err := EncodeParameter(Address, in)
		var fe *FormatError
		require.True(t, errors.As(err, &fe), "input %v: expected FormatError, got %v", in, err)
	}
}

func TestEncodeUint256(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", 42, "000000000000000000000000000000000000000000000000000000000000002a"},
		{"decimal string", "42", "000000000000000000000000000000000000000000000000000000000000002a"},
		{"hex string", "0x2a", "000000000000000000000000000000000000000000000000000000000000002a"},
		{"big", new(big.Int).Mul(big.NewInt(12345), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)),
			"00000000000000000000000000000000000000000000029d394a5d6305440000"},
		{"zero", uint64(0), strings.Repeat("0", 64)},
		{"max", new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), strings.Repeat("f", 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeParameter(Uint256, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeUint256OutOfRange(t *testing.T) {
	for _, in := range []any{
		-1,
		"-5",
		new(big.Int).Lsh(big.NewInt(1), 256),
		"1.5",
		"",
	} {
		_, err := EncodeParameter(Uint256, in)
		var fe *FormatError
		require.True(t, errors.As(err, &fe), "input %v: expected FormatError, got %v", in, err)
	}
}

func TestEncodeBytes32(t *testing.T) {
	word, err := EncodeParameter(Bytes32, "0xabcd")
	require.NoError(t, err)
	assert.Equal(t, "abcd"+strings.Repeat("0", 60), word)

	word, err = EncodeParameter(Bytes32, "ETH/USD")
	require.NoError(t, err)
	assert.Equal(t, "4554482f555344"+strings.Repeat("0", 50), word)

	full := "0x" + strings.Repeat("AB", 32)
	word, err = EncodeParameter(Bytes32, full)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ab", 32), word)

	_, err = EncodeParameter(Bytes32, "0x"+strings.Repeat("ab", 33))
	require.Error(t, err)
	_, err = EncodeParameter(Bytes32, "0xnothex")
	require.Error(t, err)

	// half a byte cannot be placed unambiguously
	_, err = EncodeParameter(Bytes32, "0xabc")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "odd length hex", fe.Reason)
	_, err = EncodeParameter(Bytes32, strings.Repeat("a", 33))
	require.Error(t, err)
}

func TestEncodeBytes32DistinctNames(t *testing.T) {
	names := []string{"ETH/USD", "BTC/USD", "API3/USD", "USDC/USD", "ETH/BTC", "ETH/USDT", "wstETH/USD"}
	seen := map[string]string{}
	for _, n := range names {
		word, err := EncodeParameter(Bytes32, n)
		require.NoError(t, err)
		prev, dup := seen[word]
		require.False(t, dup, "%s and %s encode to the same word", prev, n)
		seen[word] = n
	}
}

func TestEncodeDecodeOnlyTags(t *testing.T) {
	for _, tag := range []TypeTag{Int224, Uint32, TypeTag("bool")} {
		_, err := EncodeParameter(tag, 1)
		var fe *FormatError
		require.True(t, errors.As(err, &fe), "tag %s", tag)
	}
}

func TestEncodeParametersMatchesABIPack(t *testing.T) {
	addrT, err := abi.NewType("address", "", nil)
	require.NoError(t, err)
	uintT, err := abi.NewType("uint256", "", nil)
	require.NoError(t, err)
	b32T, err := abi.NewType("bytes32", "", nil)
	require.NoError(t, err)
	args := abi.Arguments{{Type: addrT}, {Type: uintT}, {Type: b32T}}

	amount, _ := new(big.Int).SetString("250500000000000000000", 10)
	var name [32]byte
	copy(name[:], "ETH/USD")

	packed, err := args.Pack(common.HexToAddress(testHolder), amount, name)
	require.NoError(t, err)

	got, err := EncodeParameters(
		[]TypeTag{Address, Uint256, Bytes32},
		[]any{testHolder, amount, "ETH/USD"},
	)
	require.NoError(t, err)
	assert.Equal(t, common.Bytes2Hex(packed), got)
}

func TestBuildCallData(t *testing.T) {
	data, err := BuildCallData("transfer", []TypeTag{Address, Uint256}, []any{testHolder, 42})
	require.NoError(t, err)
	assert.Len(t, data, 10+64*2)
	assert.Equal(t, "0xa9059cbb"+
		"0000000000000000000000005b38da6a701c568545dcfcb03fcb875f56beddc4"+
		"000000000000000000000000000000000000000000000000000000000000002a", data)

	data, err = BuildCallData("totalSupply", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0x18160ddd", data)

	call, err := EncodeCall("balanceOf", []TypeTag{Address}, []any{testHolder})
	require.NoError(t, err)
	assert.Len(t, call.Bytes(), 4+32)
	assert.Equal(t, "0x70a08231", call.Selector.Hex())

	_, err = BuildCallData("transfer", []TypeTag{Address, Uint256}, []any{testHolder})
	require.ErrorIs(t, err, ErrParameterCount)
}

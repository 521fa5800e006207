package codec

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSelectorERC20(t *testing.T) {
	tests := []struct {
		name  string
		types []TypeTag
		want  string
	}{
		{"transfer", []TypeTag{Address, Uint256}, "0xa9059cbb"},
		{"balanceOf", []TypeTag{Address}, "0x70a08231"},
		{"approve", []TypeTag{Address, Uint256}, "0x095ea7b3"},
		{"totalSupply", nil, "0x18160ddd"},
		{"decimals", nil, "0x313ce567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ResolveSelector(tt.name, tt.types)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sel.Hex())
		})
	}
}

func TestResolveSelectorIsKeccak(t *testing.T) {
	sel, err := ResolveSelector("readDataFeedWithDapiName", []TypeTag{Bytes32})
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256([]byte("readDataFeedWithDapiName(bytes32)"))[:4], sel[:])

	// signatures outside the well-known set still resolve, never to zero
	sel, err = ResolveSelector("someUnlistedFunction", []TypeTag{Uint256, Address})
	require.NoError(t, err)
	assert.NotEqual(t, Selector{}, sel)
	_, known := LookupSignature(sel)
	assert.False(t, known)
}

func TestResolveSelectorInvalid(t *testing.T) {
	for _, sig := range []FunctionSignature{
		NewSignature(""),
		NewSignature("transfer(address)"),
		NewSignature("transfer", Address, TypeTag("uint8")),
	} {
		_, err := sig.Selector()
		var se *SelectorResolutionError
		require.True(t, errors.As(err, &se), "signature %s", sig)
	}
}

func TestLookupSignature(t *testing.T) {
	sel, err := ParseSelector("0x70a08231")
	require.NoError(t, err)
	sig, ok := LookupSignature(sel)
	require.True(t, ok)
	assert.Equal(t, "balanceOf(address)", sig)

	for _, s := range wellKnownSignatures {
		var want Selector
		copy(want[:], crypto.Keccak256([]byte(s))[:4])
		got, ok := LookupSignature(want)
		require.True(t, ok, s)
		assert.Equal(t, s, got)
	}

	_, err = ParseSelector("0x70a082")
	require.Error(t, err)
	_, err = ParseSelector("70a08231")
	require.Error(t, err)
}

func TestSignatureCanonical(t *testing.T) {
	assert.Equal(t, "transfer(address,uint256)", NewSignature("transfer", Address, Uint256).Canonical())
	assert.Equal(t, "totalStake()", NewSignature("totalStake").Canonical())

	tags, err := ParseTypeTags("address, uint256,bytes32")
	require.NoError(t, err)
	assert.Equal(t, []TypeTag{Address, Uint256, Bytes32}, tags)

	tags, err = ParseTypeTags("")
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = ParseTypeTags("address,bool")
	require.Error(t, err)
}

package calldata

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storacha/api3ctl/pkg/codec"
)

const (
	negativeWord = "ffffffffffffffffffffffffffffffffffffffffffffffffeb2eedf284ea0000"
	timeWord     = "000000000000000000000000000000000000000000000000000000006553f100"
)

func run(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.Bytes(), err
}

func TestBuild(t *testing.T) {
	out, err := run(t, "build", "balanceOf", "0x0b38210ea11411557c13457D4dA7dC6ea731B88a", "--types", "address")
	require.NoError(t, err)

	var got builtCall
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "balanceOf(address)", got.Signature)
	assert.Equal(t, "0x70a08231", got.Selector)
	assert.Equal(t, "0x70a08231"+"0000000000000000000000000b38210ea11411557c13457d4da7dc6ea731b88a", got.Data)
}

func TestBuildCountMismatch(t *testing.T) {
	_, err := run(t, "build", "transfer", "0x0b38210ea11411557c13457D4dA7dC6ea731B88a", "--types", "address,uint256")
	require.ErrorIs(t, err, codec.ErrParameterCount)
}

func TestSelector(t *testing.T) {
	out, err := run(t, "selector", "transfer", "--types", "address,uint256")
	require.NoError(t, err)
	var got selectorInfo
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, selectorInfo{Signature: "transfer(address,uint256)", Selector: "0xa9059cbb", Known: true}, got)

	out, err = run(t, "selector", "0x18160ddd")
	require.NoError(t, err)
	got = selectorInfo{}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, selectorInfo{Signature: "totalSupply()", Selector: "0x18160ddd", Known: true}, got)
}

func TestDecodeWord(t *testing.T) {
	resp := "0x" + negativeWord + timeWord

	v, err := decodeWord(resp, "int224", 0)
	require.NoError(t, err)
	assert.Equal(t, "-1500000000000000000", v.String())

	v, err = decodeWord(resp, "uint32", 32)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", v.String())

	v, err = decodeWord(resp, "uint256", 32)
	require.NoError(t, err)
	assert.Equal(t, "1700000000", v.String())

	_, err = decodeWord(resp, "uint32", 64)
	var decErr *codec.DecodeError
	require.True(t, errors.As(err, &decErr))

	_, err = decodeWord(resp, "address", 0)
	var fmtErr *codec.FormatError
	require.True(t, errors.As(err, &fmtErr))
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "0x"+negativeWord+timeWord, "--type", "int224", "--offset", "0", "--decimals", "18")
	require.NoError(t, err)

	var got decodedWord
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, decodedWord{Type: "int224", Offset: 0, Words: 2, Value: "-1500000000000000000", Formatted: "-1.5"}, got)
}

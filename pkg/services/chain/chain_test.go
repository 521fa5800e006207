package chain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonRPCError mimics the error object go-ethereum's rpc client returns.
type jsonRPCError struct {
	code int
	msg  string
	data any
}

func (e *jsonRPCError) Error() string  { return e.msg }
func (e *jsonRPCError) ErrorCode() int { return e.code }
func (e *jsonRPCError) ErrorData() any { return e.data }

type recordedCall struct {
	method string
	args   []any
}

type fakeTransport struct {
	calls []recordedCall
	// replies are consumed in order; the last one repeats
	replies []fakeReply
}

type fakeReply struct {
	result any
	err    error
}

func (f *fakeTransport) CallContext(_ context.Context, result any, method string, args ...any) error {
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	reply := f.replies[min(len(f.calls), len(f.replies))-1]
	if reply.err != nil {
		return reply.err
	}
	raw, err := json.Marshal(reply.result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, result)
}

func TestClientCall(t *testing.T) {
	ft := &fakeTransport{replies: []fakeReply{{result: "0x2a"}}}
	c := NewClient(ft)
	to := common.HexToAddress("0x709944a48cAf83535e43471680fDA4905FB3920a")

	res, err := c.Call(context.Background(), to, "0x18160ddd")
	require.NoError(t, err)
	assert.Equal(t, "0x2a", res)

	require.Len(t, ft.calls, 1)
	assert.Equal(t, "eth_call", ft.calls[0].method)
	require.Len(t, ft.calls[0].args, 2)
	assert.Equal(t, map[string]string{"to": to.Hex(), "data": "0x18160ddd"}, ft.calls[0].args[0])
	assert.Equal(t, "latest", ft.calls[0].args[1])
}

func TestClientCallNodeError(t *testing.T) {
	stringT, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringT}}.Pack("feed not initialized")
	require.NoError(t, err)
	revert := hexutil.Encode(append(common.FromHex("0x08c379a0"), packed...))

	ft := &fakeTransport{replies: []fakeReply{{err: &jsonRPCError{code: 3, msg: "execution reverted", data: revert}}}}
	_, err = NewClient(ft).Call(context.Background(), common.Address{}, "0x")
	require.Error(t, err)

	var callErr *RPCCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "eth_call", callErr.Method)
	assert.Equal(t, 3, callErr.Code)
	assert.True(t, callErr.NodeReported())
	assert.Equal(t, revert, callErr.Data)
	assert.Contains(t, callErr.Message, "feed not initialized")
}

func TestClientTransportFailure(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")
	ft := &fakeTransport{replies: []fakeReply{{err: cause}}}

	_, err := NewClient(ft).BlockNumber(context.Background())
	var callErr *RPCCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, 0, callErr.Code)
	assert.False(t, callErr.NodeReported())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "eth_blockNumber")
}

func TestClientMetadata(t *testing.T) {
	ft := &fakeTransport{replies: []fakeReply{{result: "0x1406f40"}}}
	n, err := NewClient(ft).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(21000000), n)

	ft = &fakeTransport{replies: []fakeReply{{result: "0xa4b1"}}}
	id, err := NewClient(ft).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42161), id.Int64())
	assert.Equal(t, "eth_chainId", ft.calls[0].method)
}

func TestRetryTransport(t *testing.T) {
	flaky := errors.New("502 Bad Gateway")
	ft := &fakeTransport{replies: []fakeReply{{err: flaky}, {err: flaky}, {result: "0x1"}}}
	rt := NewRetryTransport(ft, 5, WithRetryIntervals(time.Millisecond, time.Millisecond))

	n, err := NewClient(rt).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
	assert.Len(t, ft.calls, 3)
}

func TestRetryTransportGivesUp(t *testing.T) {
	flaky := errors.New("connection reset by peer")
	ft := &fakeTransport{replies: []fakeReply{{err: flaky}}}
	rt := NewRetryTransport(ft, 3, WithRetryIntervals(time.Millisecond, time.Millisecond))

	_, err := NewClient(rt).BlockNumber(context.Background())
	require.ErrorIs(t, err, flaky)
	assert.Len(t, ft.calls, 3)
}

func TestRetryTransportSkipsNodeErrors(t *testing.T) {
	ft := &fakeTransport{replies: []fakeReply{{err: &jsonRPCError{code: -32000, msg: "execution reverted"}}}}
	rt := NewRetryTransport(ft, 5, WithRetryIntervals(time.Millisecond, time.Millisecond))

	_, err := NewClient(rt).Call(context.Background(), common.Address{}, "0x")
	var callErr *RPCCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, -32000, callErr.Code)
	assert.Len(t, ft.calls, 1)
}

func TestCredentialsSender(t *testing.T) {
	creds := Credentials{PrivateKey: "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"}
	require.True(t, creds.Present())
	addr, err := creds.Sender()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), addr)

	_, err = Credentials{}.Sender()
	require.ErrorIs(t, err, ErrMissingPrivateKey)
	assert.False(t, Credentials{}.Present())

	bad := "0xnot-a-key"
	_, err = Credentials{PrivateKey: bad}.Sender()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), bad)
}

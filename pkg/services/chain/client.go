package chain

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("service/chain")

// Transport issues one JSON-RPC request and decodes its result. A response
// carrying an error object is returned as an error even when the HTTP
// exchange succeeded. *rpc.Client satisfies Transport.
type Transport interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// Dial connects to a JSON-RPC endpoint. timeout bounds each HTTP request;
// zero leaves the http.Client default.
func Dial(ctx context.Context, endpoint string, timeout time.Duration) (*rpc.Client, error) {
	opts := []rpc.ClientOption{}
	if timeout > 0 {
		opts = append(opts, rpc.WithHTTPClient(&http.Client{Timeout: timeout}))
	}
	client, err := rpc.DialOptions(ctx, endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to RPC endpoint: %w", err)
	}
	return client, nil
}

// Client issues the read-only requests the oracle adapter needs: eth_call,
// eth_blockNumber and eth_chainId. It never submits transactions.
type Client struct {
	transport Transport
}

func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Call runs eth_call against the latest block and returns the raw hex result.
func (c *Client) Call(ctx context.Context, to common.Address, data string) (string, error) {
	const method = "eth_call"
	msg := map[string]string{
		"to":   to.Hex(),
		"data": data,
	}

	log.Debugw("issuing contract call", "to", to.Hex(), "selector", selectorOf(data))

	var result string
	if err := c.transport.CallContext(ctx, &result, method, msg, "latest"); err != nil {
		return "", newRPCCallError(method, err)
	}
	return result, nil
}

// BlockNumber returns the number of the most recent block.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	const method = "eth_blockNumber"
	var result hexutil.Uint64
	if err := c.transport.CallContext(ctx, &result, method); err != nil {
		return 0, newRPCCallError(method, err)
	}
	return uint64(result), nil
}

// ChainID returns the chain id reported by the node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	const method = "eth_chainId"
	var result hexutil.Big
	if err := c.transport.CallContext(ctx, &result, method); err != nil {
		return nil, newRPCCallError(method, err)
	}
	return (*big.Int)(&result), nil
}

func selectorOf(data string) string {
	if len(data) < 10 {
		return data
	}
	return data[:10]
}

package oracle

import (
	"context"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/api3ctl/pkg/codec"
	"github.com/storacha/api3ctl/pkg/services/chain"
	"github.com/storacha/api3ctl/pkg/services/network"
)

var log = logging.Logger("service/oracle")

const (
	// FeedDecimals is the fixed point precision of Api3ServerV1 feed values.
	FeedDecimals = 18
	// TokenDecimals is the precision of the API3 ERC20 token.
	TokenDecimals = 18
	// aprDecimals is the precision of the pool's apr(), where 1e18 is 100%.
	aprDecimals = 18
)

// Service reads API3 contracts through a single RPC endpoint. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	client   *chain.Client
	registry *network.Registry
}

type Option func(*Service)

// WithRegistry replaces the built-in network registry.
func WithRegistry(r *network.Registry) Option {
	return func(s *Service) {
		s.registry = r
	}
}

func New(client *chain.Client, opts ...Option) *Service {
	s := &Service{
		client:   client,
		registry: network.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Registry() *network.Registry {
	return s.registry
}

// ReadContract resolves the contract playing role on networkID, encodes the
// call and issues a single eth_call, returning the raw hex result. Feature
// availability is checked before anything is sent. Failures are not retried
// here; wrap the transport in a chain.RetryTransport for that.
func (s *Service) ReadContract(ctx context.Context, networkID string, role network.ContractRole, fn string, tags []codec.TypeTag, values []any) (string, error) {
	addr, err := s.registry.Resolve(networkID, role)
	if err != nil {
		return "", err
	}

	data, err := codec.BuildCallData(fn, tags, values)
	if err != nil {
		return "", fmt.Errorf("encoding %s call: %w", fn, err)
	}

	log.Debugw("reading contract", "network", networkID, "role", role, "address", addr.Hex(), "function", fn)

	result, err := s.client.Call(ctx, addr, data)
	if err != nil {
		return "", fmt.Errorf("calling %s on %s: %w", fn, networkID, err)
	}
	return result, nil
}

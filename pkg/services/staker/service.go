package staker

import (
	"fmt"
	"math/big"

	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/api3ctl/pkg/codec"
	"github.com/storacha/api3ctl/pkg/services/chain"
	"github.com/storacha/api3ctl/pkg/services/network"
	"github.com/storacha/api3ctl/pkg/services/oracle"
	"github.com/storacha/api3ctl/pkg/services/types"
)

var log = logging.Logger("service/staker")

// Service prepares staking and token approval transactions for the account
// behind creds. Payloads are returned unsigned.
type Service struct {
	*oracle.Service
	creds chain.Credentials
}

func New(oracle *oracle.Service, creds chain.Credentials) *Service {
	return &Service{
		Service: oracle,
		creds:   creds,
	}
}

// PrepareStake builds a depositAndStake call on the DAO pool. amount is a
// decimal token amount, e.g. "1.5".
func (s *Service) PrepareStake(networkID, amount string) (*types.PreparedTransaction, error) {
	if err := s.requireSigner("depositAndStake"); err != nil {
		return nil, err
	}
	raw, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	return s.prepare(networkID, network.RoleStakingPool, "depositAndStake", []codec.TypeTag{codec.Uint256}, []any{raw})
}

// PrepareUnstake builds a scheduleUnstake call on the DAO pool.
func (s *Service) PrepareUnstake(networkID, amount string) (*types.PreparedTransaction, error) {
	if err := s.requireSigner("scheduleUnstake"); err != nil {
		return nil, err
	}
	raw, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	return s.prepare(networkID, network.RoleStakingPool, "scheduleUnstake", []codec.TypeTag{codec.Uint256}, []any{raw})
}

// PrepareApprove builds an ERC20 approve call letting spender move amount
// tokens. An empty spender means the network's staking pool.
func (s *Service) PrepareApprove(networkID, spender, amount string) (*types.PreparedTransaction, error) {
	if err := s.requireSigner("approve"); err != nil {
		return nil, err
	}
	raw, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	var spenderArg any = spender
	if spender == "" {
		pool, err := s.Registry().Resolve(networkID, network.RoleStakingPool)
		if err != nil {
			return nil, fmt.Errorf("defaulting spender to the staking pool: %w", err)
		}
		spenderArg = pool
	}
	return s.prepare(networkID, network.RoleToken, "approve", []codec.TypeTag{codec.Address, codec.Uint256}, []any{spenderArg, raw})
}

func (s *Service) requireSigner(fn string) error {
	if !s.creds.Present() {
		return fmt.Errorf("%s needs a private key or keystore: %w", fn, chain.ErrMissingPrivateKey)
	}
	return nil
}

func (s *Service) prepare(networkID string, role network.ContractRole, fn string, tags []codec.TypeTag, values []any) (*types.PreparedTransaction, error) {
	if err := s.requireSigner(fn); err != nil {
		return nil, err
	}
	from, err := s.creds.Sender()
	if err != nil {
		return nil, err
	}

	cfg, err := s.Registry().Lookup(networkID)
	if err != nil {
		return nil, err
	}
	to, err := s.Registry().Resolve(networkID, role)
	if err != nil {
		return nil, err
	}
	data, err := codec.BuildCallData(fn, tags, values)
	if err != nil {
		return nil, fmt.Errorf("encoding %s call: %w", fn, err)
	}

	oracle.EmitReadOnlyNotice()
	log.Debugw("prepared transaction", "network", networkID, "function", fn, "from", from.Hex(), "to", to.Hex())

	return &types.PreparedTransaction{
		Network:  networkID,
		Function: codec.NewSignature(fn, tags...).Canonical(),
		From:     from.Hex(),
		To:       to.Hex(),
		Data:     data,
		Value:    "0",
		ChainID:  cfg.ChainID,
	}, nil
}

// parseAmount converts a decimal token amount to base units. Zero amounts
// are rejected.
func parseAmount(amount string) (*big.Int, error) {
	raw, err := codec.ToRawInteger(amount, oracle.TokenDecimals)
	if err != nil {
		return nil, err
	}
	if raw.Sign() <= 0 {
		return nil, &codec.FormatError{Kind: "amount", Input: amount, Reason: "must be greater than zero"}
	}
	return raw, nil
}

package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/storacha/api3ctl/pkg/codec"
	"github.com/storacha/api3ctl/pkg/services/network"
	"github.com/storacha/api3ctl/pkg/services/types"
)

var (
	bytes32Arg = []codec.TypeTag{codec.Bytes32}
	addressArg = []codec.TypeTag{codec.Address}
)

// CurrentPrice reads the latest value of a dAPI by name.
func (s *Service) CurrentPrice(ctx context.Context, networkID, dapiName string) (*types.PriceResult, error) {
	if dapiName == "" {
		return nil, &codec.FormatError{Kind: "dAPI name", Input: dapiName, Reason: "empty"}
	}
	raw, err := s.ReadContract(ctx, networkID, network.RolePriceFeedRegistry, "readDataFeedWithDapiName", bytes32Arg, []any{dapiName})
	if err != nil {
		return nil, err
	}
	res, err := decodeFeed(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s feed: %w", dapiName, err)
	}
	res.Network = networkID
	res.DapiName = dapiName
	return res, nil
}

// PriceByID reads the latest value of a data feed by its 32-byte id.
func (s *Service) PriceByID(ctx context.Context, networkID, dataFeedID string) (*types.PriceResult, error) {
	id, err := hexutil.Decode(dataFeedID)
	if err != nil || len(id) != codec.WordSize {
		return nil, &codec.FormatError{Kind: "data feed id", Input: dataFeedID, Reason: "expected 0x-prefixed 32-byte hex"}
	}
	raw, err := s.ReadContract(ctx, networkID, network.RolePriceFeedRegistry, "readDataFeedWithId", bytes32Arg, []any{common.BytesToHash(id)})
	if err != nil {
		return nil, err
	}
	res, err := decodeFeed(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding feed %s: %w", dataFeedID, err)
	}
	res.Network = networkID
	res.DataFeedID = hexutil.Encode(id)
	return res, nil
}

// decodeFeed unpacks the (int224 value, uint32 timestamp) pair returned by
// the feed read functions.
func decodeFeed(raw string) (*types.PriceResult, error) {
	value, err := codec.DecodeSigned224(raw)
	if err != nil {
		return nil, err
	}
	ts, err := codec.DecodeUint32At(raw, codec.DefaultTimestampOffset)
	if err != nil {
		return nil, err
	}
	return &types.PriceResult{
		Value:          value.String(),
		FormattedValue: codec.ToDecimalString(value, FeedDecimals),
		Timestamp:      ts,
	}, nil
}

// TokenBalance reads the API3 token balance of holder.
func (s *Service) TokenBalance(ctx context.Context, networkID, holder string) (*types.TokenBalance, error) {
	raw, err := s.ReadContract(ctx, networkID, network.RoleToken, "balanceOf", addressArg, []any{holder})
	if err != nil {
		return nil, err
	}
	balance, err := codec.DecodeUnsigned(raw, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding balance: %w", err)
	}
	return &types.TokenBalance{
		Network:          networkID,
		Address:          common.HexToAddress(holder).Hex(),
		Balance:          balance.String(),
		FormattedBalance: codec.ToDecimalString(balance, TokenDecimals),
	}, nil
}

// TotalSupply reads the API3 token supply.
func (s *Service) TotalSupply(ctx context.Context, networkID string) (*types.TokenSupply, error) {
	supply, err := s.readUint(ctx, networkID, network.RoleToken, "totalSupply")
	if err != nil {
		return nil, err
	}
	return &types.TokenSupply{
		Network:              networkID,
		TotalSupply:          supply.String(),
		FormattedTotalSupply: codec.ToDecimalString(supply, TokenDecimals),
	}, nil
}

// StakeAmount reads the amount staked by staker in the DAO pool.
func (s *Service) StakeAmount(ctx context.Context, networkID, staker string) (*types.StakeInfo, error) {
	raw, err := s.ReadContract(ctx, networkID, network.RoleStakingPool, "userStake", addressArg, []any{staker})
	if err != nil {
		return nil, err
	}
	amount, err := codec.DecodeUnsigned(raw, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding stake: %w", err)
	}
	return &types.StakeInfo{
		Network:         networkID,
		Staker:          common.HexToAddress(staker).Hex(),
		Amount:          amount.String(),
		FormattedAmount: codec.ToDecimalString(amount, TokenDecimals),
	}, nil
}

// TotalStake reads the total amount staked in the DAO pool.
func (s *Service) TotalStake(ctx context.Context, networkID string) (*types.StakeInfo, error) {
	amount, err := s.readUint(ctx, networkID, network.RoleStakingPool, "totalStake")
	if err != nil {
		return nil, err
	}
	return &types.StakeInfo{
		Network:         networkID,
		Amount:          amount.String(),
		FormattedAmount: codec.ToDecimalString(amount, TokenDecimals),
	}, nil
}

// StakingAPR reads the current pool APR.
func (s *Service) StakingAPR(ctx context.Context, networkID string) (*types.StakingAPR, error) {
	apr, err := s.readUint(ctx, networkID, network.RoleStakingPool, "apr")
	if err != nil {
		return nil, err
	}
	percent := new(big.Int).Mul(apr, big.NewInt(100))
	return &types.StakingAPR{
		Network: networkID,
		Raw:     apr.String(),
		Percent: codec.ToDecimalString(percent, aprDecimals),
	}, nil
}

// ProposalCount reads the number of votes created on the DAO voting app.
func (s *Service) ProposalCount(ctx context.Context, networkID string) (*types.ProposalCount, error) {
	count, err := s.readUint(ctx, networkID, network.RoleGovernance, "votesLength")
	if err != nil {
		return nil, err
	}
	if !count.IsUint64() {
		return nil, fmt.Errorf("decoding votesLength: count %s out of range", count)
	}
	return &types.ProposalCount{Network: networkID, Count: count.Uint64()}, nil
}

// NetworkStatus reports what the configured node says about networkID. A
// node serving a different chain is reported, not rejected.
func (s *Service) NetworkStatus(ctx context.Context, networkID string) (*types.NetworkStatus, error) {
	cfg, err := s.registry.Lookup(networkID)
	if err != nil {
		return nil, err
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying chain id: %w", err)
	}
	block, err := s.client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying block number: %w", err)
	}

	matches := chainID.IsUint64() && chainID.Uint64() == cfg.ChainID
	if !matches {
		log.Warnw("rpc endpoint serves a different chain", "network", networkID, "expected", cfg.ChainID, "reported", chainID)
	}

	features := s.registry.FeaturesOf(networkID)
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, string(f))
	}

	return &types.NetworkStatus{
		Network:         networkID,
		DisplayName:     cfg.DisplayName,
		ChainID:         cfg.ChainID,
		ReportedChainID: chainID.String(),
		ChainIDMatches:  matches,
		BlockNumber:     block,
		Features:        names,
	}, nil
}

// AccountOverview reads the token balance of addr and then, on networks with
// staking, its stake. The reads are sequential.
func (s *Service) AccountOverview(ctx context.Context, networkID, addr string) (*types.AccountOverview, error) {
	balance, err := s.TokenBalance(ctx, networkID, addr)
	if err != nil {
		return nil, err
	}
	overview := &types.AccountOverview{
		Network: networkID,
		Address: balance.Address,
		Balance: balance,
	}
	if !s.registry.SupportsFeature(networkID, network.FeatureStaking) {
		return overview, nil
	}
	stake, err := s.StakeAmount(ctx, networkID, addr)
	if err != nil {
		return nil, err
	}
	overview.Stake = stake
	return overview, nil
}

func (s *Service) readUint(ctx context.Context, networkID string, role network.ContractRole, fn string) (*big.Int, error) {
	raw, err := s.ReadContract(ctx, networkID, role, fn, nil, nil)
	if err != nil {
		return nil, err
	}
	v, err := codec.DecodeUnsigned(raw, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fn, err)
	}
	return v, nil
}

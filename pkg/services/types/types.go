package types

// Monetary and integer amounts are strings so they survive JSON round trips
// without precision loss. Timestamps and counts are plain numbers.

// PriceResult is one reading of a data feed.
type PriceResult struct {
	Network        string `json:"network"`
	DapiName       string `json:"dapiName,omitempty"`
	DataFeedID     string `json:"dataFeedId,omitempty"`
	Value          string `json:"value"`          // raw int224, 18 decimals
	FormattedValue string `json:"formattedValue"` // Value as a decimal string
	Timestamp      uint32 `json:"timestamp"`      // unix seconds of the last update
}

// TokenBalance is the API3 token balance of an account.
type TokenBalance struct {
	Network          string `json:"network"`
	Address          string `json:"address"`
	Balance          string `json:"balance"`
	FormattedBalance string `json:"formattedBalance"`
}

// TokenSupply is the total supply of the API3 token.
type TokenSupply struct {
	Network              string `json:"network"`
	TotalSupply          string `json:"totalSupply"`
	FormattedTotalSupply string `json:"formattedTotalSupply"`
}

// StakeInfo is an amount staked in the DAO pool, either by one staker or in
// total when Staker is empty.
type StakeInfo struct {
	Network         string `json:"network"`
	Staker          string `json:"staker,omitempty"`
	Amount          string `json:"amount"`
	FormattedAmount string `json:"formattedAmount"`
}

// StakingAPR is the current pool reward rate. Raw is 18-decimal fixed point
// where 1e18 is 100%.
type StakingAPR struct {
	Network string `json:"network"`
	Raw     string `json:"raw"`
	Percent string `json:"percent"`
}

// ProposalCount is the number of governance votes ever created.
type ProposalCount struct {
	Network string `json:"network"`
	Count   uint64 `json:"count"`
}

// NetworkStatus describes a network as seen through the configured node.
type NetworkStatus struct {
	Network         string   `json:"network"`
	DisplayName     string   `json:"displayName"`
	ChainID         uint64   `json:"chainId"`         // from the registry
	ReportedChainID string   `json:"reportedChainId"` // from the node, decimal
	ChainIDMatches  bool     `json:"chainIdMatches"`
	BlockNumber     uint64   `json:"blockNumber"`
	Features        []string `json:"features"`
}

// AccountOverview combines the token balance and, where staking is
// available, the staked amount of an account.
type AccountOverview struct {
	Network string        `json:"network"`
	Address string        `json:"address"`
	Balance *TokenBalance `json:"balance"`
	Stake   *StakeInfo    `json:"stake,omitempty"`
}

// PreparedTransaction is an unsigned transaction payload. It is never signed
// or broadcast.
type PreparedTransaction struct {
	Network  string `json:"network"`
	Function string `json:"function"`
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	ChainID  uint64 `json:"chainId"`
}

// DapiMetadata is descriptive information about a dAPI served by the market
// API. Placeholder is set when the lookup failed and the record was
// substituted.
type DapiMetadata struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Providers   []string `json:"providers"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

// EnrichedPrice is a price reading with its market metadata.
type EnrichedPrice struct {
	*PriceResult
	Metadata *DapiMetadata `json:"metadata"`
}

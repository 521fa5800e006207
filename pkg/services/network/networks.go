package network

const (
	// Api3ServerV1 is deployed at the same address on every supported chain.
	api3ServerV1Address = "0x709944a48cAf83535e43471680fDA4905FB3920a"

	// DAO contracts, Ethereum mainnet only.
	api3TokenAddress  = "0x0b38210ea11411557c13457D4dA7dC6ea731B88a"
	api3PoolAddress   = "0x6dd655f10d4b9E242aE186D9050B68F725c76d76"
	api3VotingAddress = "0xDB6C812E439Ce5C1b5B0dAF7cD1e3b3f0F4C8b6c"

	defaultDAONetwork = "ethereum"
)

var defaultNetworks = []Config{
	{
		ID:                       "ethereum",
		ChainID:                  1,
		DisplayName:              "Ethereum",
		ExplorerBaseURL:          "https://etherscan.io",
		PriceFeedRegistryAddress: api3ServerV1Address,
		TokenAddress:             api3TokenAddress,
		StakingPoolAddress:       api3PoolAddress,
		GovernanceAddress:        api3VotingAddress,
	},
	{
		ID:                       "arbitrum",
		ChainID:                  42161,
		DisplayName:              "Arbitrum One",
		ExplorerBaseURL:          "https://arbiscan.io",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
	{
		ID:                       "base",
		ChainID:                  8453,
		DisplayName:              "Base",
		ExplorerBaseURL:          "https://basescan.org",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
	{
		ID:                       "optimism",
		ChainID:                  10,
		DisplayName:              "OP Mainnet",
		ExplorerBaseURL:          "https://optimistic.etherscan.io",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
	{
		ID:                       "polygon",
		ChainID:                  137,
		DisplayName:              "Polygon PoS",
		ExplorerBaseURL:          "https://polygonscan.com",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
	{
		ID:                       "avalanche",
		ChainID:                  43114,
		DisplayName:              "Avalanche C-Chain",
		ExplorerBaseURL:          "https://snowtrace.io",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
	{
		ID:                       "bsc",
		ChainID:                  56,
		DisplayName:              "BNB Smart Chain",
		ExplorerBaseURL:          "https://bscscan.com",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
	{
		ID:                       "sepolia",
		ChainID:                  11155111,
		DisplayName:              "Sepolia",
		ExplorerBaseURL:          "https://sepolia.etherscan.io",
		PriceFeedRegistryAddress: api3ServerV1Address,
	},
}

// defaultRegistry is built once at package initialization and never mutated.
var defaultRegistry = func() *Registry {
	r, err := NewRegistry(defaultDAONetwork, defaultNetworks...)
	if err != nil {
		panic(err)
	}
	return r
}()

// Default returns the built-in registry of supported networks.
func Default() *Registry {
	return defaultRegistry
}

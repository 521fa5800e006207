package network

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ContractRole names a contract a network may deploy.
type ContractRole string

const (
	RolePriceFeedRegistry ContractRole = "price-feed-registry"
	RoleToken             ContractRole = "token"
	RoleStakingPool       ContractRole = "staking-pool"
	RoleGovernance        ContractRole = "governance"
)

// Feature is a group of operations that is available on some networks only.
type Feature string

const (
	FeatureDataFeeds  Feature = "data-feeds"
	FeatureToken      Feature = "token"
	FeatureStaking    Feature = "staking"
	FeatureGovernance Feature = "governance"
)

// Features lists every feature in display order.
var Features = []Feature{FeatureDataFeeds, FeatureToken, FeatureStaking, FeatureGovernance}

// featurePolicy decides how a feature is gated. Address gated features are
// available wherever their contract is deployed. Identity gated features are
// available on the registry's DAO network only, whatever else is configured.
var featurePolicy = map[Feature]struct {
	role          ContractRole
	identityGated bool
}{
	FeatureDataFeeds:  {role: RolePriceFeedRegistry},
	FeatureToken:      {role: RoleToken},
	FeatureStaking:    {role: RoleStakingPool, identityGated: true},
	FeatureGovernance: {role: RoleGovernance, identityGated: true},
}

// Config is the static description of one network.
type Config struct {
	ID              string `json:"id"`
	ChainID         uint64 `json:"chainId"`
	DisplayName     string `json:"displayName"`
	ExplorerBaseURL string `json:"explorerBaseUrl"`

	PriceFeedRegistryAddress string `json:"priceFeedRegistryAddress"`
	TokenAddress             string `json:"tokenAddress,omitempty"`
	StakingPoolAddress       string `json:"stakingPoolAddress,omitempty"`
	GovernanceAddress        string `json:"governanceAddress,omitempty"`
}

// Address returns the contract deployed for role, if any.
func (c Config) Address(role ContractRole) (common.Address, bool) {
	var hex string
	switch role {
	case RolePriceFeedRegistry:
		hex = c.PriceFeedRegistryAddress
	case RoleToken:
		hex = c.TokenAddress
	case RoleStakingPool:
		hex = c.StakingPoolAddress
	case RoleGovernance:
		hex = c.GovernanceAddress
	}
	if hex == "" {
		return common.Address{}, false
	}
	return common.HexToAddress(hex), true
}

// ExplorerAddressURL links to addr on the network's block explorer.
func (c Config) ExplorerAddressURL(addr common.Address) string {
	return strings.TrimRight(c.ExplorerBaseURL, "/") + "/address/" + addr.Hex()
}

func (c Config) validate() error {
	if c.ID == "" {
		return fmt.Errorf("network id is required")
	}
	if c.ChainID == 0 {
		return fmt.Errorf("network %s: chain id is required", c.ID)
	}
	if c.PriceFeedRegistryAddress == "" {
		return fmt.Errorf("network %s: price feed registry address is required", c.ID)
	}
	for role, hex := range map[ContractRole]string{
		RolePriceFeedRegistry: c.PriceFeedRegistryAddress,
		RoleToken:             c.TokenAddress,
		RoleStakingPool:       c.StakingPoolAddress,
		RoleGovernance:        c.GovernanceAddress,
	} {
		if hex != "" && !common.IsHexAddress(hex) {
			return fmt.Errorf("network %s: invalid %s address: %s", c.ID, role, hex)
		}
	}
	return nil
}

// Registry is an immutable set of network configurations. It is safe for
// concurrent use.
type Registry struct {
	networks   map[string]Config
	daoNetwork string
}

// NewRegistry validates networks and builds a registry. daoNetwork is the
// network that carries the staking and governance features.
func NewRegistry(daoNetwork string, networks ...Config) (*Registry, error) {
	r := &Registry{
		networks:   make(map[string]Config, len(networks)),
		daoNetwork: daoNetwork,
	}
	for _, n := range networks {
		if err := n.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.networks[n.ID]; dup {
			return nil, fmt.Errorf("duplicate network id: %s", n.ID)
		}
		r.networks[n.ID] = n
	}
	if daoNetwork != "" {
		if _, ok := r.networks[daoNetwork]; !ok {
			return nil, fmt.Errorf("dao network %s is not registered", daoNetwork)
		}
	}
	return r, nil
}

// Lookup returns the configuration of networkID. Unknown ids fail with
// *UnsupportedNetworkError; there is no default network.
func (r *Registry) Lookup(networkID string) (Config, error) {
	cfg, ok := r.networks[networkID]
	if !ok {
		return Config{}, &UnsupportedNetworkError{Network: networkID}
	}
	return cfg, nil
}

// SupportsFeature reports whether feature is available on networkID.
func (r *Registry) SupportsFeature(networkID string, feature Feature) bool {
	cfg, ok := r.networks[networkID]
	if !ok {
		return false
	}
	policy, ok := featurePolicy[feature]
	if !ok {
		return false
	}
	if policy.identityGated {
		return networkID == r.daoNetwork
	}
	_, deployed := cfg.Address(policy.role)
	return deployed
}

// Require fails with *UnsupportedNetworkError unless feature is available on
// networkID.
func (r *Registry) Require(networkID string, feature Feature) error {
	if _, err := r.Lookup(networkID); err != nil {
		return err
	}
	if !r.SupportsFeature(networkID, feature) {
		return &UnsupportedNetworkError{Network: networkID, Feature: feature}
	}
	return nil
}

// ContractAddress resolves the address of role on networkID.
func (r *Registry) ContractAddress(networkID string, role ContractRole) (common.Address, error) {
	cfg, err := r.Lookup(networkID)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := cfg.Address(role)
	if !ok {
		return common.Address{}, &UnsupportedNetworkError{Network: networkID, Role: role}
	}
	return addr, nil
}

// Resolve checks that the feature owning role is available on networkID and
// returns the contract address. It never touches the network.
func (r *Registry) Resolve(networkID string, role ContractRole) (common.Address, error) {
	if feature, ok := FeatureOf(role); ok {
		if err := r.Require(networkID, feature); err != nil {
			return common.Address{}, err
		}
	}
	return r.ContractAddress(networkID, role)
}

// FeatureOf returns the feature a contract role belongs to.
func FeatureOf(role ContractRole) (Feature, bool) {
	for feature, policy := range featurePolicy {
		if policy.role == role {
			return feature, true
		}
	}
	return "", false
}

// FeaturesOf lists the features available on networkID.
func (r *Registry) FeaturesOf(networkID string) []Feature {
	var out []Feature
	for _, f := range Features {
		if r.SupportsFeature(networkID, f) {
			out = append(out, f)
		}
	}
	return out
}

// IDs returns the registered network ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.networks))
	for id := range r.networks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DAONetwork is the network carrying staking and governance.
func (r *Registry) DAONetwork() string {
	return r.daoNetwork
}

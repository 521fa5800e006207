package network

import "fmt"

// UnsupportedNetworkError is returned for unknown networks, and for features
// or contracts a known network does not have.
type UnsupportedNetworkError struct {
	Network string
	Feature Feature
	Role    ContractRole
}

func (e *UnsupportedNetworkError) Error() string {
	switch {
	case e.Feature != "":
		return fmt.Sprintf("network %q does not support %s", e.Network, e.Feature)
	case e.Role != "":
		return fmt.Sprintf("network %q has no %s contract", e.Network, e.Role)
	default:
		return fmt.Sprintf("unsupported network %q", e.Network)
	}
}

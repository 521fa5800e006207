// Package calldata exposes the ABI codec on the command line. None of its
// commands read configuration or contact a node.
package calldata

import (
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "calldata",
	Short: "Encode and decode contract call data offline",
}

func init() {
	Cmd.AddCommand(buildCmd)
	Cmd.AddCommand(selectorCmd)
	Cmd.AddCommand(decodeCmd)
}

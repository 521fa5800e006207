package network

import (
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect supported networks and their features",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(featuresCmd)
	Cmd.AddCommand(statusCmd)
}

package network

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/services/network"
)

var featuresCmd = &cobra.Command{
	Use:   "features [network]",
	Short: "Show which features a network supports",
	Long: `Show which features a network supports. Data feeds and the token are
available wherever their contracts are deployed; staking and governance
exist on the DAO network only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeatures,
}

type featureSupport struct {
	Feature   network.Feature `json:"feature"`
	Supported bool            `json:"supported"`
}

func runFeatures(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOffline()
	if err != nil {
		return err
	}
	networkID := cfg.Network
	if len(args) == 1 {
		networkID = args[0]
	}

	registry := network.Default()
	if _, err := registry.Lookup(networkID); err != nil {
		return err
	}

	support := make([]featureSupport, 0, len(network.Features))
	for _, f := range network.Features {
		support = append(support, featureSupport{Feature: f, Supported: registry.SupportsFeature(networkID, f)})
	}

	return cmdutil.Output(cmd, support, func(w io.Writer) error {
		rows := make([][]string, 0, len(support))
		for _, s := range support {
			mark := "no"
			if s.Supported {
				mark = "yes"
			}
			rows = append(rows, []string{string(s.Feature), mark})
		}
		return printer.Table(w, []string{"Feature", "Supported"}, rows)
	})
}

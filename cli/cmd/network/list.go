package network

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/services/network"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported networks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

type networkInfo struct {
	network.Config
	Features []network.Feature `json:"features"`
}

func runList(cmd *cobra.Command, _ []string) error {
	registry := network.Default()
	infos := make([]networkInfo, 0, len(registry.IDs()))
	for _, id := range registry.IDs() {
		cfg, err := registry.Lookup(id)
		if err != nil {
			return err
		}
		infos = append(infos, networkInfo{Config: cfg, Features: registry.FeaturesOf(id)})
	}

	return cmdutil.Output(cmd, infos, func(w io.Writer) error {
		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			features := make([]string, 0, len(info.Features))
			for _, f := range info.Features {
				features = append(features, string(f))
			}
			rows = append(rows, []string{info.ID, info.DisplayName, strconv.FormatUint(info.ChainID, 10), strings.Join(features, ", ")})
		}
		return printer.Table(w, []string{"Network", "Name", "Chain ID", "Features"}, rows)
	})
}

package network

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the chain id and latest block of the configured node",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, closeFn, err := cmdutil.Oracle(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	status, err := svc.NetworkStatus(ctx, cfg.Network)
	if err != nil {
		return err
	}

	return cmdutil.Output(cmd, status, func(w io.Writer) error {
		match := "yes"
		if !status.ChainIDMatches {
			match = "NO, node reports " + status.ReportedChainID
		}
		return printer.KeyValues(w, [][2]string{
			{"Network", status.Network + " (" + status.DisplayName + ")"},
			{"Chain ID", strconv.FormatUint(status.ChainID, 10)},
			{"Chain ID matches", match},
			{"Block", printer.FormatBigInt(new(big.Int).SetUint64(status.BlockNumber))},
			{"Features", strings.Join(status.Features, ", ")},
		})
	})
}

// Package cmdutil holds the plumbing shared by api3ctl subcommands.
package cmdutil

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/services/chain"
	"github.com/storacha/api3ctl/pkg/services/market"
	"github.com/storacha/api3ctl/pkg/services/network"
	"github.com/storacha/api3ctl/pkg/services/oracle"
	"github.com/storacha/api3ctl/pkg/services/staker"
	"github.com/storacha/api3ctl/pkg/services/types"
)

var log = logging.Logger("api3ctl/cmdutil")

// Oracle dials the configured RPC endpoint and returns a read service.
// The returned function closes the connection.
func Oracle(ctx context.Context, cfg *config.Config) (*oracle.Service, func(), error) {
	log.Debugw("dialing node", "config", cfg.Redacted())
	rpcClient, err := chain.Dial(ctx, cfg.RPCUrl, cfg.RPCTimeout)
	if err != nil {
		return nil, nil, err
	}
	var transport chain.Transport = rpcClient
	if cfg.RPCRetries > 1 {
		transport = chain.NewRetryTransport(rpcClient, cfg.RPCRetries)
	}
	return oracle.New(chain.NewClient(transport)), rpcClient.Close, nil
}

// Staker returns a service for prepare-* commands. Preparing a transaction
// never contacts a node, so no RPC client is attached.
func Staker(cfg *config.Config) *staker.Service {
	return staker.New(oracle.New(nil), cfg.Credentials())
}

// Market returns a client for the configured market API.
func Market(cfg *config.Config) *market.Client {
	return market.NewClient(cfg.MarketAPIURL, market.WithAPIKey(cfg.MarketAPIKey))
}

// Output prints v as JSON, or through table when --output=table.
func Output(cmd *cobra.Command, v any, table func(w io.Writer) error) error {
	switch format := viper.GetString("output"); format {
	case "", "json":
		return printer.AsJson(cmd.OutOrStdout(), v)
	case "table":
		if table == nil {
			return printer.AsJson(cmd.OutOrStdout(), v)
		}
		return table(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// PreparedTable renders an unsigned transaction for --output=table.
func PreparedTable(tx *types.PreparedTransaction) func(w io.Writer) error {
	return func(w io.Writer) error {
		to := common.HexToAddress(tx.To)
		pairs := [][2]string{
			{"Function", tx.Function},
			{"From", printer.FormatAddress(common.HexToAddress(tx.From))},
			{"To", printer.FormatAddress(to)},
			{"Chain ID", strconv.FormatUint(tx.ChainID, 10)},
			{"Value", tx.Value},
		}
		if netCfg, err := network.Default().Lookup(tx.Network); err == nil && netCfg.ExplorerBaseURL != "" {
			pairs = append(pairs, [2]string{"Contract", netCfg.ExplorerAddressURL(to)})
		}
		if _, err := fmt.Fprintln(w, printer.PrintSectionHeader("Unsigned transaction ("+tx.Network+")", 48)); err != nil {
			return err
		}
		if err := printer.KeyValues(w, pairs); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\nData:\n%s\n", tx.Data)
		return err
	}
}

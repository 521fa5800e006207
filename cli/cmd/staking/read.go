package staking

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/services/oracle"
)

var stakeCmd = &cobra.Command{
	Use:   "stake <address>",
	Short: "Show the amount staked by an account",
	Args:  cobra.ExactArgs(1),
	RunE: withOracle(func(cmd *cobra.Command, svc *oracle.Service, network string, args []string) error {
		stake, err := svc.StakeAmount(cmd.Context(), network, args[0])
		if err != nil {
			return err
		}
		return cmdutil.Output(cmd, stake, func(w io.Writer) error {
			return printer.KeyValues(w, [][2]string{
				{"Staker", stake.Staker},
				{"Staked", printer.FormatDecimal(stake.FormattedAmount) + " API3"},
			})
		})
	}),
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the total amount staked in the pool",
	Args:  cobra.NoArgs,
	RunE: withOracle(func(cmd *cobra.Command, svc *oracle.Service, network string, _ []string) error {
		total, err := svc.TotalStake(cmd.Context(), network)
		if err != nil {
			return err
		}
		return cmdutil.Output(cmd, total, func(w io.Writer) error {
			return printer.KeyValues(w, [][2]string{{"Total staked", printer.FormatDecimal(total.FormattedAmount) + " API3"}})
		})
	}),
}

var aprCmd = &cobra.Command{
	Use:   "apr",
	Short: "Show the current staking APR",
	Args:  cobra.NoArgs,
	RunE: withOracle(func(cmd *cobra.Command, svc *oracle.Service, network string, _ []string) error {
		apr, err := svc.StakingAPR(cmd.Context(), network)
		if err != nil {
			return err
		}
		return cmdutil.Output(cmd, apr, func(w io.Writer) error {
			return printer.KeyValues(w, [][2]string{{"APR", apr.Percent + "%"}})
		})
	}),
}

var overviewCmd = &cobra.Command{
	Use:   "overview <address>",
	Short: "Show the token balance and stake of an account",
	Args:  cobra.ExactArgs(1),
	RunE: withOracle(func(cmd *cobra.Command, svc *oracle.Service, network string, args []string) error {
		overview, err := svc.AccountOverview(cmd.Context(), network, args[0])
		if err != nil {
			return err
		}
		return cmdutil.Output(cmd, overview, func(w io.Writer) error {
			pairs := [][2]string{
				{"Account", overview.Address},
				{"Balance", printer.FormatDecimal(overview.Balance.FormattedBalance) + " API3"},
			}
			if overview.Stake != nil {
				pairs = append(pairs, [2]string{"Staked", printer.FormatDecimal(overview.Stake.FormattedAmount) + " API3"})
			}
			return printer.KeyValues(w, pairs)
		})
	}),
}

type oracleRunFunc func(cmd *cobra.Command, svc *oracle.Service, network string, args []string) error

// withOracle loads the config and dials the node before running fn.
func withOracle(fn oracleRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		svc, closeFn, err := cmdutil.Oracle(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(cmd, svc, cfg.Network, args)
	}
}

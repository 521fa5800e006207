package token

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
)

var Cmd = &cobra.Command{
	Use:   "token",
	Short: "Read the API3 token and prepare approvals",
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the API3 balance of an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalance,
}

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show the total API3 supply",
	Args:  cobra.NoArgs,
	RunE:  runSupply,
}

var (
	approveSpender string
	approveAmount  string
)

var prepareApproveCmd = &cobra.Command{
	Use:   "prepare-approve",
	Short: "Prepare an unsigned ERC20 approve transaction",
	Long: `Prepare an unsigned ERC20 approve transaction. The private key or keystore
only determines the sender; nothing is signed or broadcast. Without
--spender the approval targets the staking pool of the DAO network.`,
	Args: cobra.NoArgs,
	RunE: runPrepareApprove,
}

func init() {
	prepareApproveCmd.Flags().StringVar(&approveSpender, "spender", "", "address allowed to spend (default staking pool)")
	prepareApproveCmd.Flags().StringVar(&approveAmount, "amount", "", "amount in API3, e.g. 100.5 (required)")
	cobra.CheckErr(prepareApproveCmd.MarkFlagRequired("amount"))

	Cmd.AddCommand(balanceCmd)
	Cmd.AddCommand(supplyCmd)
	Cmd.AddCommand(prepareApproveCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
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

	bal, err := svc.TokenBalance(ctx, cfg.Network, args[0])
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, bal, func(w io.Writer) error {
		return printer.KeyValues(w, [][2]string{
			{"Account", bal.Address},
			{"Balance", printer.FormatDecimal(bal.FormattedBalance) + " API3"},
		})
	})
}

func runSupply(cmd *cobra.Command, _ []string) error {
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

	supply, err := svc.TotalSupply(ctx, cfg.Network)
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, supply, func(w io.Writer) error {
		return printer.KeyValues(w, [][2]string{{"Total supply", printer.FormatDecimal(supply.FormattedTotalSupply) + " API3"}})
	})
}

func runPrepareApprove(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOffline()
	if err != nil {
		return err
	}

	tx, err := cmdutil.Staker(cfg).PrepareApprove(cfg.Network, approveSpender, approveAmount)
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, tx, cmdutil.PreparedTable(tx))
}

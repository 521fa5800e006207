package staking

import (
	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
)

var (
	stakeAmount   string
	unstakeAmount string
)

var prepareStakeCmd = &cobra.Command{
	Use:   "prepare-stake",
	Short: "Prepare an unsigned depositAndStake transaction",
	Long: `Prepare an unsigned depositAndStake transaction. The pool must be approved
to spend the amount first, see 'api3ctl token prepare-approve'. The private
key or keystore only determines the sender; nothing is signed or broadcast.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadOffline()
		if err != nil {
			return err
		}
		tx, err := cmdutil.Staker(cfg).PrepareStake(cfg.Network, stakeAmount)
		if err != nil {
			return err
		}
		return cmdutil.Output(cmd, tx, cmdutil.PreparedTable(tx))
	},
}

var prepareUnstakeCmd = &cobra.Command{
	Use:   "prepare-unstake",
	Short: "Prepare an unsigned scheduleUnstake transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadOffline()
		if err != nil {
			return err
		}
		tx, err := cmdutil.Staker(cfg).PrepareUnstake(cfg.Network, unstakeAmount)
		if err != nil {
			return err
		}
		return cmdutil.Output(cmd, tx, cmdutil.PreparedTable(tx))
	},
}

func init() {
	prepareStakeCmd.Flags().StringVar(&stakeAmount, "amount", "", "amount in API3, e.g. 1000 (required)")
	cobra.CheckErr(prepareStakeCmd.MarkFlagRequired("amount"))
	prepareUnstakeCmd.Flags().StringVar(&unstakeAmount, "amount", "", "amount in API3 (required)")
	cobra.CheckErr(prepareUnstakeCmd.MarkFlagRequired("amount"))
}

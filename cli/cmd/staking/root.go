package staking

import (
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "staking",
	Short: "Read the API3 DAO staking pool and prepare staking transactions",
	Long: `Read the API3 DAO staking pool and prepare staking transactions.

Staking exists on the DAO network (ethereum) only; other networks fail
before any request is sent.`,
}

func init() {
	Cmd.AddCommand(stakeCmd)
	Cmd.AddCommand(totalCmd)
	Cmd.AddCommand(aprCmd)
	Cmd.AddCommand(overviewCmd)
	Cmd.AddCommand(prepareStakeCmd)
	Cmd.AddCommand(prepareUnstakeCmd)
}

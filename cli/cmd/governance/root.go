package governance

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
)

var Cmd = &cobra.Command{
	Use:   "governance",
	Short: "Read the API3 DAO voting app",
}

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Show how many proposals have been created",
	Args:  cobra.NoArgs,
	RunE:  runProposals,
}

func init() {
	Cmd.AddCommand(proposalsCmd)
}

func runProposals(cmd *cobra.Command, _ []string) error {
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

	count, err := svc.ProposalCount(ctx, cfg.Network)
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, count, func(w io.Writer) error {
		return printer.KeyValues(w, [][2]string{{"Proposals", strconv.FormatUint(count.Count, 10)}})
	})
}

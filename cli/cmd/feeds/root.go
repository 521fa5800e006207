package feeds

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

var log = logging.Logger("api3ctl/feeds")

var Cmd = &cobra.Command{
	Use:   "feeds",
	Short: "Read API3 data feeds",
}

func init() {
	Cmd.AddCommand(priceCmd)
	Cmd.AddCommand(priceByIDCmd)
	Cmd.AddCommand(monitorCmd)
	Cmd.AddCommand(historyCmd)
}

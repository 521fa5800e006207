package feeds

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/database"
	"github.com/storacha/api3ctl/pkg/services/network"
	"github.com/storacha/api3ctl/pkg/services/oracle"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <dapi-name>",
	Short: "Show the stored history of a data feed",
	Long: `Show the snapshots 'feeds monitor' stored for a dAPI on the selected
network, newest first. Requires --database-url.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of snapshots to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOffline()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required: use --database-url or set database_url in the config file")
	}
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}
	netCfg, err := network.Default().Lookup(cfg.Network)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	feedID, err := db.GetOrCreateFeed(cfg.Network, netCfg.ChainID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get/create feed %s: %w", args[0], err)
	}
	snapshots, err := db.FeedHistory(feedID, historyLimit)
	if err != nil {
		return err
	}

	return cmdutil.Output(cmd, snapshots, func(w io.Writer) error {
		return historyTable(w, snapshots, time.Now())
	})
}

func historyTable(w io.Writer, snapshots []database.FeedSnapshot, now time.Time) error {
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			printer.FormatTokenAmount(s.Value.Int, oracle.FeedDecimals, ""),
			printer.FormatAge(uint32(s.FeedTimestamp), now),
			s.CreatedAt.Format(time.RFC3339),
			s.CheckedAt.Format(time.RFC3339),
		})
	}
	return printer.Table(w, []string{"Value", "Updated on chain", "First seen", "Last checked"}, rows)
}

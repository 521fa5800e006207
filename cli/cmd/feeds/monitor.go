package feeds

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/pkg/database"
	"github.com/storacha/api3ctl/pkg/services/network"
	"github.com/storacha/api3ctl/pkg/services/oracle"
)

var (
	monitorDapis    []string
	monitorInterval time.Duration
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Poll data feeds and store their history in PostgreSQL",
	Long: `Monitor continuously reads the given dAPIs and stores diff-based snapshots
in a PostgreSQL database (--database-url):
- A new row is inserted only when the value or on-chain update time changes
- Unchanged readings update only the checked_at timestamp of the latest row

The command runs indefinitely until interrupted (Ctrl+C).`,
	Example: "  api3ctl feeds monitor --dapi ETH/USD --dapi BTC/USD --interval 1m",
	Args:    cobra.NoArgs,
	RunE:    runMonitor,
}

func init() {
	monitorCmd.Flags().StringSliceVar(&monitorDapis, "dapi", nil, "dAPI name to monitor, repeatable (required)")
	cobra.CheckErr(monitorCmd.MarkFlagRequired("dapi"))
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 30*time.Second, "Polling interval (e.g., 30s, 1m, 5m)")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required: use --database-url or set database_url in the config file")
	}

	netCfg, err := network.Default().Lookup(cfg.Network)
	if err != nil {
		return err
	}

	log.Infof("Connecting to database...")
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	svc, closeFn, err := cmdutil.Oracle(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	feedIDs := make(map[string]uint, len(monitorDapis))
	for _, name := range monitorDapis {
		id, err := db.GetOrCreateFeed(cfg.Network, netCfg.ChainID, name)
		if err != nil {
			return fmt.Errorf("failed to get/create feed %s: %w", name, err)
		}
		feedIDs[name] = id
	}

	log.Infof("Starting monitor for %d feeds on %s with %s interval", len(feedIDs), cfg.Network, monitorInterval)
	log.Info("Press Ctrl+C to stop")

	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	if err := pollAndStore(ctx, svc, db, cfg.Network, feedIDs); err != nil {
		log.Errorf("Initial poll failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor stopped by user")
			return nil
		case <-ticker.C:
			if err := pollAndStore(ctx, svc, db, cfg.Network, feedIDs); err != nil {
				log.Errorf("Poll failed: %v", err)
			}
		}
	}
}

// pollAndStore reads every feed and records a snapshot for each. One failing
// feed does not stop the others.
func pollAndStore(ctx context.Context, svc *oracle.Service, db *database.DB, networkID string, feedIDs map[string]uint) error {
	var failed int
	for name, feedID := range feedIDs {
		price, err := svc.CurrentPrice(ctx, networkID, name)
		if err != nil {
			log.Errorf("Failed to read %s: %v", name, err)
			failed++
			continue
		}
		value, ok := new(big.Int).SetString(price.Value, 10)
		if !ok {
			return fmt.Errorf("invalid value for %s: %q", name, price.Value)
		}
		inserted, err := db.SaveFeedSnapshot(database.NewFeedSnapshot(feedID, value, price.Timestamp))
		if err != nil {
			return err
		}
		log.Debugw("stored feed snapshot", "dapi", name, "value", price.FormattedValue, "changed", inserted)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d feeds could not be read", failed, len(feedIDs))
	}
	log.Infof("Poll complete at %s - processed %d feeds", time.Now().Format(time.RFC3339), len(feedIDs))
	return nil
}

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/pkg/services/oracle"
	"github.com/storacha/api3ctl/pkg/telemetry"
)

var feedsDapis []string

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Export data feed metrics via OTLP",
	Long: `Export data feed metrics via OTLP to a collector.

Metrics exported (labelled by network and dapi):
  - api3ctl_feed_value: Latest feed value
  - api3ctl_feed_age_seconds: Seconds since the feed was last updated on chain

This command collects metrics once and exits, making it suitable for cron jobs.`,
	RunE: runFeedsMetrics,
}

func init() {
	feedsCmd.Flags().StringSliceVar(&feedsDapis, "dapi", nil, "dAPI names to export, e.g. ETH/USD (required)")
	cobra.CheckErr(feedsCmd.MarkFlagRequired("dapi"))
}

func runFeedsMetrics(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tel, shutdown, err := startTelemetry(ctx, cfg.Network)
	if err != nil {
		return err
	}
	defer shutdown()

	fm, err := telemetry.NewFeedMetrics(tel.Metrics.Meter("api3ctl"))
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	svc, closeFn, err := cmdutil.Oracle(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	log.Infow("collecting feed metrics",
		"network", cfg.Network,
		"dapis", feedsDapis,
		"endpoint", otlpEndpoint,
	)

	if err := collectFeedMetrics(ctx, svc, fm, cfg.Network, feedsDapis, time.Now()); err != nil {
		return fmt.Errorf("failed to collect feed metrics: %w", err)
	}

	log.Info("feed metrics collected successfully")
	return nil
}

func collectFeedMetrics(
	ctx context.Context,
	svc *oracle.Service,
	fm *telemetry.FeedMetrics,
	networkID string,
	dapis []string,
	now time.Time,
) error {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prices, err := svc.CurrentPrices(fetchCtx, networkID, dapis)
	if err != nil {
		return fmt.Errorf("failed to read feeds: %w", err)
	}

	for _, price := range prices {
		if err := fm.Record(ctx, price, oracle.FeedDecimals, now); err != nil {
			return err
		}
		log.Infow("recorded feed metrics",
			"dapi", price.DapiName,
			"value", price.FormattedValue,
			"timestamp", price.Timestamp,
		)
	}
	return nil
}

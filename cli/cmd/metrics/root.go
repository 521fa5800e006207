package metrics

import (
	"context"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storacha/api3ctl/pkg/telemetry"
	"github.com/storacha/api3ctl/pkg/telemetry/metrics"
)

var log = logging.Logger("api3ctl/metrics")

var (
	otlpEndpoint string
	otlpInsecure bool
	environment  string
)

var Cmd = &cobra.Command{
	Use:   "metrics",
	Short: "Export metrics via OTLP",
	Long: `Export metrics via OTLP to a collector like Grafana Alloy or OpenTelemetry Collector.

This command supports subcommands for different metric types:
  - feeds: data feed values and their age
  - staking: DAO pool totals and APR, optionally per account

Each subcommand collects metrics once and exits, making them suitable for cron jobs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logging.LevelFromString(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		// exporters run unattended, keep at least info
		logging.SetAllLoggers(min(lvl, logging.LevelInfo))
		return nil
	},
}

func init() {
	Cmd.PersistentFlags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP HTTP endpoint (required, e.g., localhost:4318)")
	cobra.CheckErr(Cmd.MarkPersistentFlagRequired("otlp-endpoint"))
	Cmd.PersistentFlags().BoolVar(&otlpInsecure, "otlp-insecure", false, "Use insecure connection for OTLP")
	Cmd.PersistentFlags().StringVar(&environment, "environment", "production", "deployment environment reported with the metrics")

	Cmd.AddCommand(feedsCmd)
	Cmd.AddCommand(stakingCmd)
}

// startTelemetry initializes telemetry with a short publish interval for
// one-shot collection. The returned function flushes and shuts it down.
func startTelemetry(ctx context.Context, instanceID string) (*telemetry.Telemetry, func(), error) {
	tel, err := telemetry.New(ctx, telemetry.Config{
		Environment:    environment,
		ServiceName:    "api3ctl",
		ServiceVersion: "0.0.1",
		InstanceID:     instanceID,
		Metrics: metrics.Config{
			Collectors: []metrics.CollectorConfig{
				{
					Endpoint:        otlpEndpoint,
					Insecure:        otlpInsecure,
					PublishInterval: 5 * time.Second,
				},
			},
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	shutdown := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Errorw("failed to shutdown telemetry", "error", err)
		}
	}
	return tel, shutdown, nil
}

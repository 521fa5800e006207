package metrics

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/pkg/services/oracle"
	"github.com/storacha/api3ctl/pkg/telemetry"
)

var stakingAccounts []string

var stakingCmd = &cobra.Command{
	Use:   "staking",
	Short: "Export DAO staking metrics via OTLP",
	Long: `Export DAO staking metrics via OTLP to a collector.

Metrics exported (values in API3 token units):
  - api3ctl_pool_total_stake: Total amount staked in the pool
  - api3ctl_pool_apr_percent: Current staking APR
  - api3ctl_account_stake: Amount staked per --account
  - api3ctl_account_balance: Token balance per --account

This command collects metrics once and exits, making it suitable for cron jobs.`,
	RunE: runStakingMetrics,
}

func init() {
	stakingCmd.Flags().StringSliceVar(&stakingAccounts, "account", nil, "account addresses to export stake and balance for")
}

type stakingMetrics struct {
	totalStake     *telemetry.Float64Gauge
	apr            *telemetry.Float64Gauge
	accountStake   *telemetry.Float64Gauge
	accountBalance *telemetry.Float64Gauge
}

func runStakingMetrics(cmd *cobra.Command, args []string) error {
	validate, err := config.NewValidator()
	if err != nil {
		return err
	}
	for _, account := range stakingAccounts {
		if err := validate.Var(account, "required,address"); err != nil {
			return fmt.Errorf("invalid account address %s: %w", account, err)
		}
	}

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

	sm, err := newStakingMetrics(tel.Metrics.Meter("api3ctl"))
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	svc, closeFn, err := cmdutil.Oracle(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	log.Infow("collecting staking metrics",
		"network", cfg.Network,
		"accounts", len(stakingAccounts),
		"endpoint", otlpEndpoint,
	)

	if err := collectStakingMetrics(ctx, svc, sm, cfg.Network, stakingAccounts); err != nil {
		return fmt.Errorf("failed to collect staking metrics: %w", err)
	}

	log.Info("staking metrics collected successfully")
	return nil
}

func newStakingMetrics(meter metric.Meter) (*stakingMetrics, error) {
	totalStake, err := telemetry.NewFloat64Gauge(meter, "api3ctl_pool_total_stake", "Total amount staked in the DAO pool", "api3")
	if err != nil {
		return nil, err
	}

	apr, err := telemetry.NewFloat64Gauge(meter, "api3ctl_pool_apr_percent", "Current staking APR", "%")
	if err != nil {
		return nil, err
	}

	accountStake, err := telemetry.NewFloat64Gauge(meter, "api3ctl_account_stake", "Amount staked by an account", "api3")
	if err != nil {
		return nil, err
	}

	accountBalance, err := telemetry.NewFloat64Gauge(meter, "api3ctl_account_balance", "Token balance of an account", "api3")
	if err != nil {
		return nil, err
	}

	return &stakingMetrics{
		totalStake:     totalStake,
		apr:            apr,
		accountStake:   accountStake,
		accountBalance: accountBalance,
	}, nil
}

func collectStakingMetrics(
	ctx context.Context,
	svc *oracle.Service,
	sm *stakingMetrics,
	networkID string,
	accounts []string,
) error {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	netAttr := attribute.String("network", networkID)

	total, err := svc.TotalStake(fetchCtx, networkID)
	if err != nil {
		return fmt.Errorf("failed to fetch total stake: %w", err)
	}
	totalRaw, err := parseRaw(total.Amount)
	if err != nil {
		return err
	}
	sm.totalStake.Record(ctx, telemetry.ToFloat(totalRaw, oracle.TokenDecimals), netAttr)

	apr, err := svc.StakingAPR(fetchCtx, networkID)
	if err != nil {
		return fmt.Errorf("failed to fetch apr: %w", err)
	}
	aprRaw, err := parseRaw(apr.Raw)
	if err != nil {
		return err
	}
	// raw is a fraction with 18 decimals, 1e18 is 100%
	sm.apr.Record(ctx, telemetry.ToFloat(aprRaw, oracle.TokenDecimals)*100, netAttr)

	for _, account := range accounts {
		overview, err := svc.AccountOverview(fetchCtx, networkID, account)
		if err != nil {
			return fmt.Errorf("failed to fetch account %s: %w", account, err)
		}
		attrs := []attribute.KeyValue{netAttr, attribute.String("account", overview.Address)}

		balanceRaw, err := parseRaw(overview.Balance.Balance)
		if err != nil {
			return err
		}
		sm.accountBalance.Record(ctx, telemetry.ToFloat(balanceRaw, oracle.TokenDecimals), attrs...)

		if overview.Stake != nil {
			stakeRaw, err := parseRaw(overview.Stake.Amount)
			if err != nil {
				return err
			}
			sm.accountStake.Record(ctx, telemetry.ToFloat(stakeRaw, oracle.TokenDecimals), attrs...)
		}

		log.Infow("recorded account metrics", "account", overview.Address)
	}

	return nil
}

func parseRaw(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

package feeds

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/config"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/services/types"
)

var withMetadata bool

var priceCmd = &cobra.Command{
	Use:   "price <dapi-name>...",
	Short: "Read the current value of one or more dAPIs",
	Long: `Read the current value of one or more dAPIs, e.g. "ETH/USD".

With --metadata each reading is enriched with its description from the
market API. A failed metadata lookup yields a placeholder record; the
on-chain reading is always the real one.`,
	Example: "  api3ctl feeds price ETH/USD BTC/USD --network arbitrum",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPrice,
}

var priceByIDCmd = &cobra.Command{
	Use:   "price-by-id <data-feed-id>",
	Short: "Read the current value of a data feed by its 32-byte id",
	Args:  cobra.ExactArgs(1),
	RunE:  runPriceByID,
}

func init() {
	priceCmd.Flags().BoolVar(&withMetadata, "metadata", false, "attach dAPI metadata from the market API")
}

func runPrice(cmd *cobra.Command, args []string) error {
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

	prices, err := svc.CurrentPrices(ctx, cfg.Network, args)
	if err != nil {
		return err
	}

	if !withMetadata {
		return cmdutil.Output(cmd, prices, func(w io.Writer) error {
			return priceTable(w, prices)
		})
	}

	mkt := cmdutil.Market(cfg)
	enriched := make([]*types.EnrichedPrice, 0, len(prices))
	for _, p := range prices {
		e, err := mkt.EnrichPrice(ctx, p)
		if err != nil {
			return err
		}
		enriched = append(enriched, e)
	}
	return cmdutil.Output(cmd, enriched, func(w io.Writer) error {
		return priceTable(w, prices)
	})
}

func runPriceByID(cmd *cobra.Command, args []string) error {
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

	price, err := svc.PriceByID(ctx, cfg.Network, args[0])
	if err != nil {
		return err
	}
	return cmdutil.Output(cmd, price, func(w io.Writer) error {
		return priceTable(w, []*types.PriceResult{price})
	})
}

func priceTable(w io.Writer, prices []*types.PriceResult) error {
	now := time.Now()
	rows := make([][]string, 0, len(prices))
	for _, p := range prices {
		name := p.DapiName
		if name == "" {
			name = p.DataFeedID
		}
		rows = append(rows, []string{name, p.Network, printer.FormatDecimal(p.FormattedValue), printer.FormatAge(p.Timestamp, now)})
	}
	return printer.Table(w, []string{"Feed", "Network", "Value", "Updated"}, rows)
}

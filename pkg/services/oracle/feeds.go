package oracle

import (
	"context"

	"github.com/storacha/api3ctl/pkg/services/types"
	"golang.org/x/sync/errgroup"
)

// CurrentPrices reads several dAPIs on one network. Each name is an
// independent read issued on its own goroutine; results keep the order of
// dapiNames. The first failure cancels the remaining reads.
func (s *Service) CurrentPrices(ctx context.Context, networkID string, dapiNames []string) ([]*types.PriceResult, error) {
	grp, gctx := errgroup.WithContext(ctx)
	prices := make([]*types.PriceResult, len(dapiNames))
	for i, name := range dapiNames {
		grp.Go(func() error {
			price, err := s.CurrentPrice(gctx, networkID, name)
			if err != nil {
				return err
			}
			prices[i] = price
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

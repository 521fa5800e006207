package market

import (
	"context"
	"errors"

	"github.com/storacha/api3ctl/pkg/services/types"
)

// WithPlaceholder passes v through when err is nil. When err is a
// *FetchError it returns placeholder(err) and a nil error. Any other error
// is returned unchanged, so failures outside the market API are never
// masked.
func WithPlaceholder[T any](v T, err error, placeholder func(*FetchError) T) (T, error) {
	if err == nil {
		return v, nil
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		log.Warnw("market lookup failed, using placeholder", "url", fetchErr.URL, "error", fetchErr)
		return placeholder(fetchErr), nil
	}
	var zero T
	return zero, err
}

// PlaceholderMetadata is the record shown when a dAPI's metadata cannot be
// fetched.
func PlaceholderMetadata(dapiName string) *types.DapiMetadata {
	return &types.DapiMetadata{
		Name:        dapiName,
		Category:    "unknown",
		Description: "metadata unavailable",
		Providers:   []string{},
		Placeholder: true,
	}
}

// EnrichPrice attaches market metadata to a price reading. The reading
// itself is never altered or dropped; only the metadata may be a
// placeholder.
func (c *Client) EnrichPrice(ctx context.Context, price *types.PriceResult) (*types.EnrichedPrice, error) {
	md, err := c.DapiMetadata(ctx, price.Network, price.DapiName)
	md, err = WithPlaceholder(md, err, func(*FetchError) *types.DapiMetadata {
		return PlaceholderMetadata(price.DapiName)
	})
	if err != nil {
		return nil, err
	}
	return &types.EnrichedPrice{PriceResult: price, Metadata: md}, nil
}

package telemetry

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/storacha/api3ctl/pkg/services/types"
)

// FeedMetrics exports the value and staleness of data feeds.
type FeedMetrics struct {
	value *Float64Gauge
	age   *Float64Gauge
}

func NewFeedMetrics(meter metric.Meter) (*FeedMetrics, error) {
	value, err := NewFloat64Gauge(meter, "api3ctl_feed_value", "Latest data feed value", "1")
	if err != nil {
		return nil, err
	}
	age, err := NewFloat64Gauge(meter, "api3ctl_feed_age_seconds", "Seconds since the data feed was last updated on chain", "s")
	if err != nil {
		return nil, err
	}
	return &FeedMetrics{value: value, age: age}, nil
}

// Record exports one reading. now is the reference time for the age gauge.
func (m *FeedMetrics) Record(ctx context.Context, price *types.PriceResult, decimals int, now time.Time) error {
	raw, ok := new(big.Int).SetString(price.Value, 10)
	if !ok {
		return fmt.Errorf("invalid feed value %q", price.Value)
	}
	attrs := []attribute.KeyValue{
		attribute.String("network", price.Network),
		attribute.String("dapi", price.DapiName),
	}
	m.value.Record(ctx, ToFloat(raw, decimals), attrs...)

	age := now.Sub(time.Unix(int64(price.Timestamp), 0)).Seconds()
	m.age.Record(ctx, max(age, 0), attrs...)
	return nil
}

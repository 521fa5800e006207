package telemetry

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/storacha/api3ctl/pkg/codec"
)

type Float64Gauge struct {
	gauge metric.Float64Gauge
}

func NewFloat64Gauge(meter metric.Meter, name string, description string, unit string) (*Float64Gauge, error) {
	if name == "" {
		return nil, fmt.Errorf("gauge name required")
	}
	if description == "" {
		return nil, fmt.Errorf("gauge description required")
	}

	gauge, err := meter.Float64Gauge(
		name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge %s: %w", name, err)
	}

	return &Float64Gauge{
		gauge: gauge,
	}, nil
}

func (g *Float64Gauge) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	g.gauge.Record(ctx, value, metric.WithAttributes(attrs...))
}

// ToFloat converts a fixed point integer to float64 for export. Precision
// beyond float64 is lost, which is acceptable for dashboards and nothing
// else.
// Example: 2000500000000000000000 with 18 decimals -> 2000.5
func ToFloat(raw *big.Int, decimals int) float64 {
	if raw == nil {
		return 0
	}
	f, _ := strconv.ParseFloat(codec.ToDecimalString(raw, decimals), 64)
	return f
}

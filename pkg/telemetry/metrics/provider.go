package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const defaultPublishInterval = 30 * time.Second

// CollectorConfig is one OTLP/HTTP collector metrics are pushed to.
type CollectorConfig struct {
	Endpoint        string
	Insecure        bool
	PublishInterval time.Duration
}

type Config struct {
	Collectors []CollectorConfig
}

// NewProvider builds a meter provider with one periodic reader per
// collector. The returned function flushes and stops every reader.
func NewProvider(ctx context.Context, rsrc *resource.Resource, cfg Config) (*sdkmetric.MeterProvider, func(context.Context) error, error) {
	if len(cfg.Collectors) == 0 {
		return nil, nil, fmt.Errorf("at least one metrics collector is required")
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(rsrc)}
	for _, c := range cfg.Collectors {
		if c.Endpoint == "" {
			return nil, nil, fmt.Errorf("metrics collector endpoint required")
		}
		exporterOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(c.Endpoint)}
		if c.Insecure {
			exporterOpts = append(exporterOpts, otlpmetrichttp.WithInsecure())
		}
		exporter, err := otlpmetrichttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("creating OTLP exporter for %s: %w", c.Endpoint, err)
		}

		interval := c.PublishInterval
		if interval <= 0 {
			interval = defaultPublishInterval
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	return provider, provider.Shutdown, nil
}

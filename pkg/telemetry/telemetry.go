package telemetry

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/storacha/api3ctl/pkg/telemetry/metrics"
)

type shutdownFn func(context.Context) error

// Config identifies the exporting process and where metrics go.
type Config struct {
	Environment    string `validate:"required"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`
	InstanceID     string `validate:"required"`
	Metrics        metrics.Config
}

type Telemetry struct {
	Metrics     metric.MeterProvider
	shutdownFns []shutdownFn
}

func New(ctx context.Context, cfg Config, resourceOpts ...resource.Option) (*Telemetry, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	rsrcOpts := []resource.Option{resource.WithAttributes(
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		semconv.ServiceInstanceIDKey.String(cfg.InstanceID),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
	)}
	rsrcOpts = append(rsrcOpts, resourceOpts...)

	rsrc, err := resource.New(ctx, rsrcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	metricsProvider, metricShutdownFn, err := metrics.NewProvider(ctx, rsrc, cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}

	otel.SetMeterProvider(metricsProvider)

	return &Telemetry{
		Metrics:     metricsProvider,
		shutdownFns: []shutdownFn{metricShutdownFn},
	}, nil
}

// Shutdown flushes pending metrics. Every shutdown function runs; the first
// error is returned.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var first error
	for _, fn := range t.shutdownFns {
		if err := fn(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

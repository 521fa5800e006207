package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/resource"
)

func TestNewProviderRequiresCollectors(t *testing.T) {
	_, _, err := NewProvider(context.Background(), resource.Empty(), Config{})
	require.Error(t, err)

	_, _, err = NewProvider(context.Background(), resource.Empty(), Config{Collectors: []CollectorConfig{{}}})
	require.ErrorContains(t, err, "endpoint")
}

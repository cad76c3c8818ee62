package tracing_test

import (
	"context"
	"testing"

	"github.com/phrazzld/flashgen-api/internal/config"
	"github.com/phrazzld/flashgen-api/internal/platform/tracing"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenDisabled(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
	}, nil)

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{Enabled: true}, nil)

	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx), "no-op shutdown ignores a cancelled context")
}

func TestSetup_CreatesProviderWhenEnabled(t *testing.T) {
	// Non-routable address so no export actually happens.
	shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{
		Enabled:      true,
		OTLPEndpoint: "http://192.0.2.1:4318",
		ServiceName:  "flashgen-test",
	}, nil)

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

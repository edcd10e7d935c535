package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "", "dev")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestHostPort(t *testing.T) {
	tests := map[string]string{
		"collector:4317":          "collector:4317",
		"http://collector:4317":   "collector:4317",
		"https://collector:4317/": "collector:4317",
	}
	for in, want := range tests {
		assert.Equal(t, want, hostPort(in), in)
	}
}

func TestExporterOptions(t *testing.T) {
	assert.Len(t, exporterOptions("collector:4317", "dev"), 3)
	assert.Len(t, exporterOptions("https://collector:4317", "dev"), 3)
}

func TestSetupWithEndpoint(t *testing.T) {
	// The gRPC exporter connects lazily, so setup succeeds without a collector.
	shutdown, err := Setup(context.Background(), "localhost:4317", "dev")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

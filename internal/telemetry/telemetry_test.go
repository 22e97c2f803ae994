package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTelemetry(t *testing.T) {
	// Empty endpoint installs nothing and returns a usable shutdown.
	shutdown, err := InitTelemetry(context.Background(), "test-service", "v1.0.0", "test", "", nil)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     Endpoint
	}{
		{
			name:     "local collector",
			endpoint: "http://localhost:4318",
			want:     Endpoint{Host: "localhost:4318", Insecure: true, TracePath: "/v1/traces", LogPath: "/", MetricPath: "/v1/metrics"},
		},
		{
			name:     "grafana otlp prefix",
			endpoint: "https://otlp-gateway.grafana.net/otlp",
			want:     Endpoint{Host: "otlp-gateway.grafana.net", TracePath: "/otlp/v1/traces", LogPath: "/otlp/v1/logs", MetricPath: "/otlp/v1/metrics"},
		},
		{
			name:     "custom base path",
			endpoint: "https://collector.example.com/ingest/v1/traces",
			want:     Endpoint{Host: "collector.example.com", TracePath: "/ingest/v1/traces", LogPath: "/ingest/v1/logs", MetricPath: "/ingest/v1/metrics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEndpoint(tt.endpoint))
		})
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	if tracer == nil {
		t.Fatal("Tracer returned nil")
	}
}

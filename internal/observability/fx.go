// Package observability wires tracing and HTTP metrics for the server.
package observability

import (
	"github.com/signdesk/signdesk/internal/observability/metrics"
	"github.com/signdesk/signdesk/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		tracing.NewProvider,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}

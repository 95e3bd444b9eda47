package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/artbid/auction-marketplace-backend"

// Tracer returns the service tracer from the globally registered provider.
// Provider wiring (exporter, sampler) is left to deployment; without it the
// returned tracer is a no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

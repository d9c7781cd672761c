// Package observability bootstraps OpenTelemetry for programs using nap
// and defines the metrics a client records per request.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("reports"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("reports"))
//	defer mp.Shutdown(ctx)
//
// Clients pick up the global providers unless others are injected with
// rest.WithTracerProvider and rest.WithMeterProvider.
package observability

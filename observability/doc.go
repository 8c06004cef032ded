// Package observability wires OpenTelemetry tracing and metrics.
//
// Init installs global tracer and meter providers exporting over OTLP/HTTP.
// Without Init the global no-op providers are used, so instrumented code
// runs unchanged in tests.
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(context.Background())
package observability

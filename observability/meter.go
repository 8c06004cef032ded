package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/restkit/logger"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
	))
	return mp, nil
}

// Outcome summarizes one finished call for spans and metrics.
type Outcome struct {
	Method     string
	Route      string
	StatusCode int
	Duration   time.Duration
	Err        error
	ErrorCode  string
	ErrorKind  string
}

// Label is "success" or "error".
func (o Outcome) Label() string {
	if o.Err != nil {
		return "error"
	}
	return "success"
}

// Metrics holds the result instruments for one side of the wire.
type Metrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates instruments named <prefix>.results and <prefix>.duration.
func NewMetrics(meter metric.Meter, prefix string) (*Metrics, error) {
	total, err := meter.Int64Counter(prefix+".results",
		metric.WithDescription("Results by status code and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s.results counter: %w", prefix, err)
	}
	duration, err := meter.Float64Histogram(prefix+".duration",
		metric.WithDescription("Call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s.duration histogram: %w", prefix, err)
	}
	return &Metrics{total: total, duration: duration}, nil
}

// Record adds one outcome. A nil receiver records nothing.
func (m *Metrics) Record(ctx context.Context, o Outcome) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, o.Method),
		attribute.Int(AttrStatusCode, o.StatusCode),
		attribute.String(AttrOutcome, o.Label()),
	}
	if o.Route != "" {
		attrs = append(attrs, attribute.String(AttrRoute, o.Route))
	}
	m.total.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.duration.Record(ctx, o.Duration.Seconds(), metric.WithAttributes(attrs[:2]...))
}

var (
	clientOnce    sync.Once
	clientMetrics *Metrics
	serverOnce    sync.Once
	serverMetrics *Metrics
)

// ClientMetrics returns the rest.client instruments on the global provider.
func ClientMetrics() *Metrics {
	clientOnce.Do(func() {
		clientMetrics = mustMetrics("rest.client")
	})
	return clientMetrics
}

// ServerMetrics returns the http.server instruments on the global provider.
func ServerMetrics() *Metrics {
	serverOnce.Do(func() {
		serverMetrics = mustMetrics("http.server")
	})
	return serverMetrics
}

func mustMetrics(prefix string) *Metrics {
	m, err := NewMetrics(otel.Meter(instrumentationName), prefix)
	if err != nil {
		logger.Warn("metrics disabled", logger.Fields("prefix", prefix, logger.FieldError, err.Error()))
		return nil
	}
	return m
}

// Init installs tracer and meter providers when cfg.Enabled is set. The
// returned function flushes and shuts both down.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return func(ctx context.Context) error {
		terr := tp.Shutdown(ctx)
		merr := mp.Shutdown(ctx)
		if terr != nil {
			return terr
		}
		return merr
	}, nil
}

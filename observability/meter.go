package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/nap/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the program using the client.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of that program.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller must shut it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("observability: creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.GetGlobalLogger().WithComponent("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Instrument names recorded by ClientMetrics.
const (
	MetricClientRequests = "client.requests"
	MetricClientDuration = "client.request.duration"
	MetricClientErrors   = "client.errors"
)

// ClientMetrics holds the instruments a client records per request.
type ClientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

// NewClientMetrics creates client instruments on the given meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	requests, err := meter.Int64Counter(MetricClientRequests,
		metric.WithDescription("Requests sent, by client, method and status code"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: creating %s counter: %w", MetricClientRequests, err)
	}

	duration, err := meter.Float64Histogram(MetricClientDuration,
		metric.WithDescription("Round-trip duration of requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: creating %s histogram: %w", MetricClientDuration, err)
	}

	errs, err := meter.Int64Counter(MetricClientErrors,
		metric.WithDescription("Failed requests, by client, method and error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: creating %s counter: %w", MetricClientErrors, err)
	}

	return &ClientMetrics{requests: requests, duration: duration, errors: errs}, nil
}

// RecordRequest records a completed round trip. status is 0 when no
// response was received.
func (m *ClientMetrics) RecordRequest(ctx context.Context, client, method string, status int, d time.Duration) {
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client", client),
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("client", client),
		attribute.String("method", method),
	))
}

// RecordError records a failed request by error kind, e.g. "not_found".
func (m *ClientMetrics) RecordError(ctx context.Context, client, method, kind string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client", client),
		attribute.String("method", method),
		attribute.String("kind", kind),
	))
}

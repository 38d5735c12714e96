package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/groupchain/logger"
)

// MeterConfig configures periodic metric export.
type MeterConfig struct {
	ServiceInfo
	Exporter
	// Interval is the time between exports.
	Interval time.Duration
}

// DefaultMeterConfig exports to a local collector every 15 seconds.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceInfo: defaultService(serviceName),
		Exporter:    defaultExporter(),
		Interval:    15 * time.Second,
	}
}

// InitMeter installs a periodic OTLP meter provider as the global one.
// Shut the returned provider down on exit to flush the last interval.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the chain engine.
type Metrics struct {
	groupsTransformed metric.Int64Counter
	stepsApplied      metric.Int64Counter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	groupsTransformed, err := meter.Int64Counter("groupchain.groups.transformed",
		metric.WithDescription("Groups passed through a composed pipeline"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating groups.transformed counter: %w", err)
	}

	stepsApplied, err := meter.Int64Counter("groupchain.steps.applied",
		metric.WithDescription("Pipeline steps run against a group, filtered or not"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating steps.applied counter: %w", err)
	}

	operationTotal, err := meter.Int64Counter("groupchain.operation.total",
		metric.WithDescription("Total number of terminal chain operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("groupchain.operation.duration",
		metric.WithDescription("Duration of terminal chain operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating operation.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("groupchain.error.total",
		metric.WithDescription("Total errors by code and operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		groupsTransformed: groupsTransformed,
		stepsApplied:      stepsApplied,
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		errorTotal:        errorTotal,
	}, nil
}

// DefaultMetrics creates instruments on the global meter provider. With no
// provider installed the instruments are no-ops.
func DefaultMetrics() *Metrics {
	m, err := NewMetrics(Meter(instrumentationName))
	if err != nil {
		logger.Get("observability").Warn("metrics disabled", logger.ErrorFields("new_metrics", err))
		return nil
	}
	return m
}

// RecordGroup records one group transformed with the given number of steps.
func (m *Metrics) RecordGroup(ctx context.Context, steps int) {
	if m == nil {
		return
	}
	m.groupsTransformed.Add(ctx, 1)
	m.stepsApplied.Add(ctx, int64(steps))
}

// RecordOperation records a terminal operation execution.
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordError records an error by code and operation.
func (m *Metrics) RecordError(ctx context.Context, code, operation string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("operation", operation),
	))
}

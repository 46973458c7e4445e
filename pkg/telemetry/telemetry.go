// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/CodeMonkeyCybersecurity/ecocart"

const (
	// TraceFile receives one JSON span per line.
	TraceFile = "telemetry.jsonl"
	// MetricFile receives the counter snapshots exported on Shutdown.
	MetricFile = "metrics.jsonl"
)

var (
	mu       sync.RWMutex
	tracer   trace.Tracer
	shutdown = func(context.Context) error { return nil }

	swapCounter   metric.Int64Counter
	rewardCounter metric.Int64Counter
)

// Init configures OpenTelemetry; call this early in main().
//
// When enabled is false noop providers are installed. Otherwise spans are
// written to TraceFile and counters to MetricFile inside dir.
func Init(service string, enabled bool, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		tracer = tp.Tracer(service)
		shutdown = func(context.Context) error { return nil }
		return registerCounters(metricnoop.NewMeterProvider().Meter(instrumentationName))
	}

	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".ecocart", "telemetry")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}

	traceOut, err := openAppend(filepath.Join(dir, TraceFile))
	if err != nil {
		return err
	}
	metricOut, err := openAppend(filepath.Join(dir, MetricFile))
	if err != nil {
		_ = traceOut.Close()
		return err
	}
	closeFiles := func() error {
		return cerr.CombineErrors(traceOut.Close(), metricOut.Close())
	}

	traceExp, err := stdouttrace.New(
		stdouttrace.WithWriter(traceOut),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		_ = closeFiles()
		return cerr.Wrap(err, "failed to create trace exporter")
	}
	metricExp, err := stdoutmetric.New(
		stdoutmetric.WithWriter(metricOut),
		stdoutmetric.WithoutTimestamps(),
	)
	if err != nil {
		_ = closeFiles()
		return cerr.Wrap(err, "failed to create metric exporter")
	}

	res := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		attribute.String("service.name", service),
		attribute.String("host.name", hostname()),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	// The periodic reader also exports once more when the provider shuts down.
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)

	if err := registerCounters(mp.Meter(instrumentationName)); err != nil {
		_ = closeFiles()
		return err
	}
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	tracer = tp.Tracer(service)
	shutdown = func(ctx context.Context) error {
		err := cerr.CombineErrors(tp.Shutdown(ctx), mp.Shutdown(ctx))
		return cerr.CombineErrors(err, closeFiles())
	}
	return nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, cerr.Wrapf(err, "failed to open %s", path)
	}
	return f, nil
}

// registerCounters must be called with mu held.
func registerCounters(meter metric.Meter) error {
	swaps, err := meter.Int64Counter("ecocart.swaps",
		metric.WithDescription("Product swaps by outcome"))
	if err != nil {
		return cerr.Wrap(err, "failed to create swap counter")
	}
	rewards, err := meter.Int64Counter("ecocart.rewards_unlocked",
		metric.WithDescription("Green rewards unlocked"))
	if err != nil {
		return cerr.Wrap(err, "failed to create reward counter")
	}
	swapCounter, rewardCounter = swaps, rewards
	return nil
}

// Shutdown flushes pending spans and counters.
func Shutdown(ctx context.Context) error {
	mu.RLock()
	fn := shutdown
	mu.RUnlock()
	return fn(ctx)
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	mu.RLock()
	t := tracer
	mu.RUnlock()
	if t == nil {
		t = otel.Tracer(instrumentationName)
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordSwap counts a swap attempt with its outcome. It is a no-op before Init.
func RecordSwap(ctx context.Context, outcome string) {
	mu.RLock()
	c := swapCounter
	mu.RUnlock()
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordReward counts a session crossing the green reward threshold.
func RecordReward(ctx context.Context, savingsKg float64) {
	mu.RLock()
	c := rewardCounter
	mu.RUnlock()
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(attribute.Float64("savings_kg", savingsKg)))
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName  = "event-manager"
	defaultOTLPEndpoint = "localhost:4317"
)

// TracerConfig describes the process to the collector.
type TracerConfig struct {
	ServiceName    string
	ServiceVersion string
	// Environment is reported as deployment.environment, e.g. "dev" or "prod".
	Environment string
	Endpoint    string
}

func (c TracerConfig) withDefaults() TracerConfig {
	if c.ServiceName == "" {
		c.ServiceName = defaultServiceName
	}
	if c.Endpoint == "" {
		c.Endpoint = defaultOTLPEndpoint
	}
	return c
}

// TracerResource builds the resource attached to every exported span.
func TracerResource(ctx context.Context, cfg TracerConfig) (*resource.Resource, error) {
	cfg = cfg.withDefaults()

	attrs := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.ServiceVersion)))
	}
	if cfg.Environment != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.DeploymentEnvironment(cfg.Environment)))
	}

	return resource.New(ctx, attrs...)
}

// InitTracer installs a global OTLP/gRPC tracer provider and the W3C
// propagators. The returned shutdown flushes pending spans.
func InitTracer(ctx context.Context, cfg TracerConfig) (shutdown func(context.Context) error, err error) {
	cfg = cfg.withDefaults()

	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)

	if err != nil {
		return nil, fmt.Errorf("create otlp grpc exporter: %w", err)
	}

	res, err := TracerResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(2*time.Second)),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	return tp.Shutdown, nil
}

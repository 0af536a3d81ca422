package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/eskiturk2021/api-gateway/internal/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracing owns the tracer used for request spans
type Tracing struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

// InitTracing configures an OTLP/HTTP exporter when an endpoint is set and a no-op tracer otherwise.
// The provider is also installed as the global otel tracer provider.
func InitTracing(ctx context.Context, settings *config.IntegrationSettings) (*Tracing, error) {
	if settings.OTLPEndpoint == "" {
		return &Tracing{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	exporter, err := otlptracehttp.New(ctx, endpointOption(settings.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", settings.ServiceName),
			attribute.String("service.version", config.AppVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	return &Tracing{provider: provider, shutdown: provider.Shutdown}, nil
}

// endpointOption accepts both a full URL and a bare host:port, the latter sent without TLS
func endpointOption(endpoint string) otlptracehttp.Option {
	if strings.Contains(endpoint, "://") {
		return otlptracehttp.WithEndpointURL(endpoint)
	}
	return otlptracehttp.WithEndpoint(endpoint)
}

// Tracer returns the named tracer
func (t *Tracing) Tracer(name string) trace.Tracer {
	return t.provider.Tracer(name)
}

// Shutdown flushes pending spans
func (t *Tracing) Shutdown(ctx context.Context) error {
	return t.shutdown(ctx)
}

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const ServiceName = "cam2cart"

type Controller struct {
	traceProvider *sdktrace.TracerProvider
}

// Init installs a Jaeger-backed tracer provider. With an empty endpoint the
// global no-op provider stays in place and the controller does nothing.
func Init(endpoint string) (*Controller, error) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	if endpoint == "" {
		return &Controller{}, nil
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(endpoint),
	))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)

	return &Controller{traceProvider: tp}, nil
}

func (c *Controller) Shutdown(ctx context.Context) error {
	if c.traceProvider == nil {
		return nil
	}
	return c.traceProvider.Shutdown(ctx)
}

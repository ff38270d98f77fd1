// Package telemetry wires OpenTelemetry span export around dispatched
// transactions, off by default and gated entirely by Config.Enabled.
package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config controls OpenTelemetry trace export.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Insecure       bool
	SampleRate     float64
}

var (
	tracer         trace.Tracer
	tracerOnce     sync.Once
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Init sets up the OpenTelemetry SDK per cfg. When cfg.Enabled is false it
// installs a no-op tracer and returns a shutdown func that does nothing.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled {
		enabled = false
		tracer = noop.NewTracerProvider().Tracer("mxd")
		return func(context.Context) error { return nil }, nil
	}
	enabled = true

	var opts []otlptracegrpc.Option
	opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tracer = tracerProvider.Tracer(cfg.ServiceName)

	return func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tracerProvider.Shutdown(shutdownCtx)
	}, nil
}

// IsEnabled reports whether Init was called with a true Config.Enabled.
func IsEnabled() bool {
	return enabled
}

// Tracer returns the global tracer, a no-op one if Init was never called.
func Tracer() trace.Tracer {
	tracerOnce.Do(func() {
		if tracer == nil {
			tracer = noop.NewTracerProvider().Tracer("mxd")
		}
	})
	return tracer
}

// StartDispatchSpan starts a span for one dispatched transaction, carrying
// its wire type as an attribute.
func StartDispatchSpan(ctx context.Context, txnType uint16) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "dispatch.transaction", trace.WithAttributes(
		attribute.Int64("mxd.transaction_type", int64(txnType)),
	))
}

// EndDispatchSpan records errorCode on span and ends it. A non-zero
// errorCode marks the span as an error.
func EndDispatchSpan(span trace.Span, errorCode uint32) {
	span.SetAttributes(attribute.Int64("mxd.error_code", int64(errorCode)))
	if errorCode != 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("error code %d", errorCode))
	}
	span.End()
}

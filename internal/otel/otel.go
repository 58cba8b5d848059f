package otel

import (
	"context"
	"sync"

	"github.com/modql/modql/internal/eventbus"
	"github.com/modql/modql/internal/events"
	"github.com/modql/modql/internal/opid"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithInsecure()))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	sub := &subscriber{tracer: otel.Tracer("modql")}
	sub.register()

	return tp.Shutdown, nil
}

type subscriber struct {
	tracer      trace.Tracer
	bundleSpans sync.Map // opid -> trace.Span
	checkSpans  sync.Map // opid -> trace.Span
}

func (s *subscriber) register() {
	eventbus.Subscribe(func(ctx context.Context, e events.BundleStart) {
		id, _ := opid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "modql.bundle")
		span.SetAttributes(attribute.Int("modql.modules", e.Modules))
		s.bundleSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.BundleFinish) {
		id, _ := opid.FromContext(ctx)
		v, ok := s.bundleSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		span.SetAttributes(
			attribute.Int("modql.typedefs_bytes", e.TypeDefsBytes),
			attribute.Int("modql.resolver_types", e.ResolverTypes),
		)
		span.End()
	})

	eventbus.Subscribe(func(ctx context.Context, e events.ModuleDiscovered) {
		id, _ := opid.FromContext(ctx)
		v, ok := s.bundleSpans.Load(id)
		if !ok {
			return
		}
		v.(trace.Span).AddEvent("module.discovered", trace.WithAttributes(
			attribute.String("modql.module.dir", e.Dir),
			attribute.Int("modql.module.dependencies", e.Dependencies),
		))
	})

	eventbus.Subscribe(func(ctx context.Context, e events.CheckStart) {
		// The bundle span has already ended when check runs; the check span
		// stands on its own.
		id, _ := opid.FromContext(ctx)
		_, span := s.tracer.Start(ctx, "modql.check")
		span.SetAttributes(attribute.String("modql.schema.name", e.Name))
		s.checkSpans.Store(id, span)
	})

	eventbus.Subscribe(func(ctx context.Context, e events.CheckFinish) {
		id, _ := opid.FromContext(ctx)
		v, ok := s.checkSpans.LoadAndDelete(id)
		if !ok {
			return
		}
		span := v.(trace.Span)
		if e.Err != nil {
			span.RecordError(e.Err)
		}
		span.End()
	})
}

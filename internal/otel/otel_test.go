package otel

import (
	"context"
	"testing"

	"github.com/modql/modql/internal/eventbus"
	"github.com/modql/modql/internal/events"
	"github.com/modql/modql/internal/opid"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSubscriberRecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)
	sub := &subscriber{tracer: tp.Tracer("test")}
	sub.register()

	ctx, _ := opid.NewContext(context.Background())
	eventbus.Publish(ctx, events.BundleStart{Modules: 2})
	eventbus.Publish(ctx, events.ModuleDiscovered{Dir: "shop", Dependencies: 1})
	eventbus.Publish(ctx, events.BundleFinish{TypeDefsBytes: 42, ResolverTypes: 3})

	// The bundle span is closed before check begins; the check span must
	// still start and end on its own.
	eventbus.Publish(ctx, events.CheckStart{Name: "bundle"})
	eventbus.Publish(ctx, events.CheckFinish{Name: "bundle"})

	spans := rec.Ended()
	require.Len(t, spans, 2)

	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	require.Contains(t, names, "modql.bundle")
	require.Contains(t, names, "modql.check")
}

func TestSubscriberIgnoresUncorrelatedFinish(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)
	sub := &subscriber{tracer: tp.Tracer("test")}
	sub.register()

	ctx, _ := opid.NewContext(context.Background())
	eventbus.Publish(ctx, events.BundleFinish{})
	eventbus.Publish(ctx, events.CheckFinish{})

	require.Empty(t, rec.Ended())
}

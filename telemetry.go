package gohooks

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/davidroman0O/gohooks"

// TracingMiddleware creates a middleware that wraps every render in a span.
// The span records the store size after the render and is marked as failed
// when the render returns an error.
func TracingMiddleware(tp trace.TracerProvider) Middleware {
	tracer := tp.Tracer(instrumentationName)

	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, rt *Runtime, logger Logger) error {
			ctx, span := tracer.Start(ctx, "gohooks.render",
				trace.WithAttributes(
					attribute.String("gohooks.runtime.id", rt.ID()),
					attribute.String("gohooks.store.id", rt.Store().ID()),
				),
			)
			defer span.End()

			err := next(ctx, rt, logger)

			st := rt.Store().Stats()
			span.SetAttributes(
				attribute.Int64("gohooks.render.number", int64(rt.Renders())),
				attribute.Int("gohooks.store.ids", st.IDs),
				attribute.Int("gohooks.store.slots", st.Slots),
			)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return err
		}
	}
}

// MeteringMiddleware creates a middleware that records render counts,
// durations and the number of IDs each render purged.
func MeteringMiddleware(mp metric.MeterProvider) (Middleware, error) {
	meter := mp.Meter(instrumentationName)

	renders, err := meter.Int64Counter("gohooks.renders",
		metric.WithDescription("Number of renders."))
	if err != nil {
		return nil, fmt.Errorf("failed to create renders counter: %w", err)
	}
	failures, err := meter.Int64Counter("gohooks.render.failures",
		metric.WithDescription("Number of renders that returned an error."))
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}
	duration, err := meter.Float64Histogram("gohooks.render.duration",
		metric.WithDescription("Render duration."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	purged, err := meter.Int64Counter("gohooks.store.purged",
		metric.WithDescription("IDs purged at the end of renders."))
	if err != nil {
		return nil, fmt.Errorf("failed to create purged counter: %w", err)
	}

	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, rt *Runtime, logger Logger) error {
			attrs := metric.WithAttributes(attribute.String("gohooks.runtime.id", rt.ID()))
			before := rt.Store().Stats().Purged

			start := time.Now()
			err := next(ctx, rt, logger)
			elapsed := time.Since(start)

			renders.Add(ctx, 1, attrs)
			duration.Record(ctx, elapsed.Seconds(), attrs)
			purged.Add(ctx, int64(rt.Store().Stats().Purged-before), attrs)
			if err != nil {
				failures.Add(ctx, 1, attrs)
			}
			return err
		}
	}, nil
}

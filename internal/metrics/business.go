package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("socialchef/leftover")

	// Generation metrics
	GenerationsTotal   metric.Int64Counter
	GenerationDuration metric.Float64Histogram

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// Feedback metrics
	RatingsTotal metric.Int64Counter
)

func Init() error {
	var err error

	GenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of leftover recipe generations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	GenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of leftover recipe generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	RatingsTotal, err = meter.Int64Counter(
		"recipe.ratings.total",
		metric.WithDescription("Total number of manual test-mode ratings"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordExternalCall records one outbound API call. Safe to call before Init.
func RecordExternalCall(ctx context.Context, provider string, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", statusOf(err)),
	)
	if ExternalAPIDuration != nil {
		ExternalAPIDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	if ExternalAPICallsTotal != nil {
		ExternalAPICallsTotal.Add(ctx, 1, attrs)
	}
}

// RecordGeneration records one recipe generation. Safe to call before Init.
func RecordGeneration(ctx context.Context, preference string, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("preference", preference),
		attribute.String("status", statusOf(err)),
	)
	if GenerationDuration != nil {
		GenerationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	if GenerationsTotal != nil {
		GenerationsTotal.Add(ctx, 1, attrs)
	}
}

// RecordRating counts one manual rating by score. Safe to call before Init.
func RecordRating(ctx context.Context, score int) {
	if RatingsTotal == nil {
		return
	}
	RatingsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Int("score", score)))
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

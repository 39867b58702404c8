package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("generation-metrics")

// GenerationMetrics provides metrics collection for spec generation
type GenerationMetrics struct {
	specsGeneratedCounter       metric.Int64Counter
	specsFailedCounter          metric.Int64Counter
	generationDurationHistogram metric.Float64Histogram
	generationsActiveGauge      metric.Int64UpDownCounter
}

// NewGenerationMetrics creates a new generation metrics collector
func NewGenerationMetrics() (*GenerationMetrics, error) {
	specsGeneratedCounter, err := meter.Int64Counter(
		"specdraft.specs.generated",
		metric.WithDescription("Total number of specs generated successfully"),
		metric.WithUnit("{spec}"),
	)
	if err != nil {
		return nil, err
	}

	specsFailedCounter, err := meter.Int64Counter(
		"specdraft.specs.failed",
		metric.WithDescription("Total number of spec generations that failed"),
		metric.WithUnit("{spec}"),
	)
	if err != nil {
		return nil, err
	}

	generationDurationHistogram, err := meter.Float64Histogram(
		"specdraft.generation.duration",
		metric.WithDescription("Duration of spec generation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	generationsActiveGauge, err := meter.Int64UpDownCounter(
		"specdraft.generations.active",
		metric.WithDescription("Number of generation requests in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &GenerationMetrics{
		specsGeneratedCounter:       specsGeneratedCounter,
		specsFailedCounter:          specsFailedCounter,
		generationDurationHistogram: generationDurationHistogram,
		generationsActiveGauge:      generationsActiveGauge,
	}, nil
}

// RecordGenerationStarted records a generation request entering flight
func (gm *GenerationMetrics) RecordGenerationStarted(ctx context.Context, templateType string) {
	gm.generationsActiveGauge.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("template.type", templateType),
		),
	)
}

// RecordGenerationCompleted records a successful generation
func (gm *GenerationMetrics) RecordGenerationCompleted(ctx context.Context, templateType string, duration time.Duration) {
	gm.specsGeneratedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("template.type", templateType),
			attribute.String("status", "completed"),
		),
	)
	gm.generationDurationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("template.type", templateType),
			attribute.String("status", "completed"),
		),
	)
	gm.generationsActiveGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("template.type", templateType),
		),
	)
}

// RecordGenerationFailed records a failed generation with its error kind
func (gm *GenerationMetrics) RecordGenerationFailed(ctx context.Context, templateType, errorType string, duration time.Duration) {
	gm.specsFailedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("template.type", templateType),
			attribute.String("status", "failed"),
			attribute.String("error.type", errorType),
		),
	)
	gm.generationDurationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("template.type", templateType),
			attribute.String("status", "failed"),
		),
	)
	gm.generationsActiveGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("template.type", templateType),
		),
	)
}

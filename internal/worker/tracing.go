package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/socialchef/leftover/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelMiddleware starts a consumer span per task.
func OTelMiddleware(h asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		taskID, _ := asynq.GetTaskID(ctx)
		queueName, _ := asynq.GetQueueName(ctx)
		retryCount, _ := asynq.GetRetryCount(ctx)

		ctx, span := telemetry.Tracer("worker").Start(ctx, "task "+t.Type(),
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(
				attribute.String("messaging.system", "asynq"),
				attribute.String("messaging.destination.name", queueName),
				attribute.String("messaging.message.id", taskID),
				attribute.String("job.type", t.Type()),
				attribute.Int("job.retry_count", retryCount),
				attribute.Int("messaging.message.body.size", len(t.Payload())),
			),
		)
		defer span.End()

		err := h.ProcessTask(ctx, t)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.Bool("job.skip_retry", errors.Is(err, asynq.SkipRetry)))
		}
		return err
	})
}

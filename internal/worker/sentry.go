package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

// SentryMiddleware binds a per-task hub to the context and reports failures.
// Panics are reported and returned as errors so asynq can retry the task.
func SentryMiddleware(h asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) (err error) {
		taskID, _ := asynq.GetTaskID(ctx)
		queueName, _ := asynq.GetQueueName(ctx)
		retryCount, _ := asynq.GetRetryCount(ctx)

		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTags(map[string]string{
				"task_type":   t.Type(),
				"task_id":     taskID,
				"queue":       queueName,
				"retry_count": strconv.Itoa(retryCount),
			})
			scope.SetContext("task", sentry.Context{"payload_bytes": len(t.Payload())})
		})
		ctx = sentry.SetHubOnContext(ctx, hub)

		defer func() {
			if r := recover(); r != nil {
				hub.RecoverWithContext(ctx, r)
				err = fmt.Errorf("panic processing %s: %v", t.Type(), r)
			}
		}()

		err = h.ProcessTask(ctx, t)
		if err != nil {
			if errors.Is(err, asynq.SkipRetry) {
				hub.ConfigureScope(func(scope *sentry.Scope) { scope.SetLevel(sentry.LevelWarning) })
			}
			hub.CaptureException(err)
		}
		return err
	})
}

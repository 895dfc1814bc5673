package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/rasoi-next/internal/queue"
	"github.com/rasoi-next/internal/service"

	"github.com/hibiken/asynq"
)

type recordingAdvancer struct {
	calls []string
	err   error
}

func (r *recordingAdvancer) AdvanceScheduled(_ context.Context, orderID uint, targetStatus string) error {
	r.calls = append(r.calls, queue.OrderProgressTaskID(orderID, targetStatus))
	return r.err
}

func newProgressTask(t *testing.T, orderID uint, status string) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderProgressTask(queue.OrderProgressPayload{OrderID: orderID, TargetStatus: status})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderProgressAdvances(t *testing.T) {
	advancer := &recordingAdvancer{}
	consumer := &Consumer{advancer: advancer}
	if err := consumer.handleOrderProgress(context.Background(), newProgressTask(t, 7, "preparing")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(advancer.calls) != 1 || advancer.calls[0] != "order-progress:7:preparing" {
		t.Fatalf("unexpected calls: %v", advancer.calls)
	}
}

func TestHandleOrderProgressSwallowsStaleSteps(t *testing.T) {
	for _, stale := range []error{service.ErrInvalidTransition, service.ErrOrderNotFound} {
		consumer := &Consumer{advancer: &recordingAdvancer{err: stale}}
		if err := consumer.handleOrderProgress(context.Background(), newProgressTask(t, 7, "ready")); err != nil {
			t.Fatalf("stale step %v should not retry: %v", stale, err)
		}
	}
}

func TestHandleOrderProgressRetriesUnexpectedErrors(t *testing.T) {
	boom := errors.New("database is locked")
	consumer := &Consumer{advancer: &recordingAdvancer{err: boom}}
	if err := consumer.handleOrderProgress(context.Background(), newProgressTask(t, 7, "ready")); !errors.Is(err, boom) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestHandleOrderProgressRejectsBadPayload(t *testing.T) {
	consumer := &Consumer{advancer: &recordingAdvancer{}}
	task := asynq.NewTask(queue.TaskOrderProgress, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderProgress(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected skip retry, got %v", err)
	}
}

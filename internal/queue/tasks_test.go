package queue

import (
	"testing"
)

func TestOrderProgressTaskRoundTrip(t *testing.T) {
	task, err := NewOrderProgressTask(OrderProgressPayload{OrderID: 42, TargetStatus: "ready"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderProgress {
		t.Fatalf("task type want %s got %s", TaskOrderProgress, task.Type())
	}
	payload, err := ParseOrderProgressPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.OrderID != 42 || payload.TargetStatus != "ready" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseOrderProgressPayloadRejectsEmpty(t *testing.T) {
	if _, err := ParseOrderProgressPayload([]byte(`{"order_id":0}`)); err == nil {
		t.Fatalf("empty payload should be rejected")
	}
	if _, err := ParseOrderProgressPayload([]byte(`not-json`)); err == nil {
		t.Fatalf("malformed payload should be rejected")
	}
}

func TestOrderProgressTaskIDIsStable(t *testing.T) {
	if OrderProgressTaskID(7, "preparing") != OrderProgressTaskID(7, "preparing") {
		t.Fatalf("task id should be deterministic")
	}
	if OrderProgressTaskID(7, "preparing") == OrderProgressTaskID(7, "ready") {
		t.Fatalf("task id should differ per target status")
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("nil config should disable the queue")
	}
	if err := client.EnqueueOrderProgress(OrderProgressPayload{OrderID: 1, TargetStatus: "ready"}, 0); err != nil {
		t.Fatalf("disabled enqueue should be a no-op: %v", err)
	}
	if err := client.CancelOrderProgress(1, []string{"ready"}); err != nil {
		t.Fatalf("disabled cancel should be a no-op: %v", err)
	}
}

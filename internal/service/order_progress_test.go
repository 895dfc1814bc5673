package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
)

type recordingAdvancer struct {
	mu    sync.Mutex
	calls []string
}

func (a *recordingAdvancer) AdvanceScheduled(_ context.Context, _ uint, targetStatus string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, targetStatus)
	return nil
}

func (a *recordingAdvancer) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

func TestTimerSchedulerIgnoresReplacedTimer(t *testing.T) {
	clock := newFakeClock()
	scheduler := NewTimerProgressScheduler(clock)
	advancer := &recordingAdvancer{}
	scheduler.SetAdvancer(advancer)

	ctx := context.Background()
	steps := []OrderProgressStep{{Status: constants.OrderStatusPreparing, Delay: 5 * time.Minute}}
	if err := scheduler.Schedule(ctx, 7, steps); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	stale := scheduler.timers[7][constants.OrderStatusPreparing].seq
	if err := scheduler.Schedule(ctx, 7, []OrderProgressStep{{Status: constants.OrderStatusPreparing, Delay: 10 * time.Minute}}); err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}

	// 旧定时器在 Stop 之前已触发
	scheduler.fire(7, constants.OrderStatusPreparing, stale)
	if advancer.count() != 0 {
		t.Fatalf("replaced timer should not advance the order")
	}
	if scheduler.Pending(7) != 1 {
		t.Fatalf("replacement timer should stay registered, pending=%d", scheduler.Pending(7))
	}

	if err := scheduler.Cancel(ctx, 7); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	clock.Advance(time.Hour)
	if advancer.count() != 0 {
		t.Fatalf("cancelled timer fired: %v", advancer.calls)
	}
}

func TestTimerSchedulerFiresInOrder(t *testing.T) {
	clock := newFakeClock()
	scheduler := NewTimerProgressScheduler(clock)
	advancer := &recordingAdvancer{}
	scheduler.SetAdvancer(advancer)

	steps := ProgressSteps(config.OrderConfig{})
	if err := scheduler.Schedule(context.Background(), 3, steps); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	clock.Advance(20 * time.Minute)
	want := []string{constants.OrderStatusPreparing, constants.OrderStatusReady, constants.OrderStatusOutForDelivery}
	if len(advancer.calls) != len(want) {
		t.Fatalf("want %v got %v", want, advancer.calls)
	}
	for i := range want {
		if advancer.calls[i] != want[i] {
			t.Fatalf("step %d want %s got %s", i, want[i], advancer.calls[i])
		}
	}
	if scheduler.Pending(3) != 0 {
		t.Fatalf("fired timers should be released")
	}
}

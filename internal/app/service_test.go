package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type stubService struct {
	name     string
	startErr error
	stops    *[]string
	mu       *sync.Mutex
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *stubService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.stops = append(*s.stops, s.name)
	return nil
}

func TestRunnerStopsServicesInReverseOrder(t *testing.T) {
	var (
		mu    sync.Mutex
		stops []string
	)
	runner := NewRunner(
		&stubService{name: "api", stops: &stops, mu: &mu},
		nil,
		&stubService{name: "order_progress", stops: &stops, mu: &mu},
	)
	if got := strings.Join(runner.Names(), ","); got != "api,order_progress" {
		t.Fatalf("unexpected services: %s", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled run should return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	mu.Lock()
	defer mu.Unlock()
	if strings.Join(stops, ",") != "order_progress,api" {
		t.Fatalf("stop order want order_progress,api got %v", stops)
	}
}

func TestRunnerReportsFailingService(t *testing.T) {
	var (
		mu    sync.Mutex
		stops []string
	)
	boom := errors.New("bind failed")
	runner := NewRunner(
		&stubService{name: "api", startErr: boom, stops: &stops, mu: &mu},
		&stubService{name: "order_progress", stops: &stops, mu: &mu},
	)
	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "api:") {
		t.Fatalf("want wrapped api error got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(stops) != 2 {
		t.Fatalf("all services should be stopped, got %v", stops)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, " API ": ModeAPI, "worker": ModeWorker, "all": ModeAll}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) want %s got %s err=%v", raw, want, got, err)
		}
	}
	if _, err := ParseMode("kitchen"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

type fakeRestorer struct {
	calls int
}

func (f *fakeRestorer) RestoreAutoProgress(ctx context.Context) (int, error) {
	f.calls++
	return 2, nil
}

type fakeStopper struct {
	stopped bool
}

func (f *fakeStopper) Stop() { f.stopped = true }

func TestOrderProgressServiceRestoresAndStops(t *testing.T) {
	restorer := &fakeRestorer{}
	stopper := &fakeStopper{}
	svc := NewOrderProgressService(restorer, stopper)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if restorer.calls != 1 {
		t.Fatalf("restore should run once on start, got %d", restorer.calls)
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !stopper.stopped {
		t.Fatalf("stop should release timers")
	}
}

package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Chahit/FinTrack-sub001/internal/domain"
	"go.uber.org/zap"
)

// blockingAlertStore parks ListActive until released so a pass can be held
// in flight from the test.
type blockingAlertStore struct {
	fakeAlertStore
	entered chan struct{}
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (s *blockingAlertStore) ListActive(ctx context.Context) ([]domain.ActiveAlert, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.entered <- struct{}{}
	<-s.release
	return nil, nil
}

func (s *blockingAlertStore) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRunOncePassesNeverOverlap(t *testing.T) {
	store := &blockingAlertStore{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	store.triggered = make(map[string]bool)
	store.deleted = make(map[string]bool)
	logger := zap.NewNop()
	dispatcher := NewDispatcher(store, &fakeNotificationStore{}, &fakeNotifier{}, logger)
	evaluator := NewEvaluator(store, newFakePriceSource(), dispatcher, logger)
	scheduler := NewScheduler(evaluator, time.Hour, logger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.RunOnce(context.Background())
	}()

	select {
	case <-store.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first pass never started")
	}

	// A second invocation while the first is in flight must be a no-op.
	scheduler.RunOnce(context.Background())
	if got := store.listCalls(); got != 1 {
		t.Fatalf("overlapping pass ran: %d store reads", got)
	}

	close(store.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first pass never finished")
	}

	// With the first pass finished the guard is clear again.
	go func() { <-store.entered }()
	scheduler.RunOnce(context.Background())
	if got := store.listCalls(); got != 2 {
		t.Fatalf("expected a fresh pass to run, got %d store reads", got)
	}
}

func TestSchedulerStartAndStop(t *testing.T) {
	store := newFakeAlertStore()
	logger := zap.NewNop()
	dispatcher := NewDispatcher(store, &fakeNotificationStore{}, &fakeNotifier{}, logger)
	evaluator := NewEvaluator(store, newFakePriceSource(), dispatcher, logger)
	scheduler := NewScheduler(evaluator, 10*time.Millisecond, logger)

	scheduler.Start(context.Background())
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	scheduler := NewScheduler(nil, time.Minute, zap.NewNop())
	scheduler.Stop()
}

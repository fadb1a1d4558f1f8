package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/space-prime/app/news"
)

type countingPruner struct {
	calls  atomic.Int32
	err    error
	called chan struct{}
}

func newCountingPruner(err error) *countingPruner {
	return &countingPruner{err: err, called: make(chan struct{}, 16)}
}

func (p *countingPruner) PurgeExpired(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	select {
	case p.called <- struct{}{}:
	default:
	}
	return 2, p.err
}

type stubWarmer struct {
	query news.Query
	err   error
	calls atomic.Int32
}

func (w *stubWarmer) All(ctx context.Context, q news.Query) ([]news.Article, error) {
	w.calls.Add(1)
	w.query = q
	return []news.Article{{Title: "a"}}, w.err
}

func TestNewTask(t *testing.T) {
	first := NewTask(TaskTypePruneCache, "responses")
	second := NewTask(TaskTypePruneCache, "responses")

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("Expected unique task IDs, got '%s' and '%s'", first.ID, second.ID)
	}
	if first.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, first.MaxRetries)
	}
	if first.GetDuration() != 0 {
		t.Errorf("Expected zero duration before start, got %v", first.GetDuration())
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		if !first.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		first.IncrementRetryCount()
	}
	if first.CanRetry() {
		t.Error("Expected retries to be exhausted")
	}
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		retry    int
		expected time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{10, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := retryDelay(tt.retry); got != tt.expected {
			t.Errorf("Expected delay %v for retry %d, got %v", tt.expected, tt.retry, got)
		}
	}
}

func TestPruneCacheTask(t *testing.T) {
	pruner := newCountingPruner(nil)
	task := NewPruneCacheTask(pruner)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if pruner.calls.Load() != 1 {
		t.Errorf("Expected 1 purge, got %d", pruner.calls.Load())
	}

	failing := NewPruneCacheTask(newCountingPruner(errors.New("disk I/O error")))
	if err := failing.Execute(context.Background()); err == nil {
		t.Error("Expected error from failing pruner")
	}
}

func TestPruneCacheTaskCancelled(t *testing.T) {
	pruner := newCountingPruner(nil)
	task := NewPruneCacheTask(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if pruner.calls.Load() != 0 {
		t.Errorf("Expected no purge after cancellation, got %d", pruner.calls.Load())
	}
}

func TestWarmNewsTask(t *testing.T) {
	warmer := &stubWarmer{}
	task := NewWarmNewsTask(warmer, 7*24*time.Hour)

	before := time.Now().UTC().Add(-7 * 24 * time.Hour)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if warmer.query.Limit != -1 {
		t.Errorf("Expected unlimited query, got limit %d", warmer.query.Limit)
	}
	if warmer.query.Earliest.Before(before) {
		t.Errorf("Expected earliest after %v, got %v", before, warmer.query.Earliest)
	}

	failing := NewWarmNewsTask(&stubWarmer{err: news.ErrSourcesUnavailable}, time.Hour)
	if err := failing.Execute(context.Background()); !errors.Is(err, news.ErrSourcesUnavailable) {
		t.Errorf("Expected ErrSourcesUnavailable, got: %v", err)
	}
}

func TestSchedulerRunsStartupTasks(t *testing.T) {
	pruner := newCountingPruner(nil)
	warmer := &stubWarmer{}
	scheduler := NewScheduler(pruner, warmer, SchedulerOptions{
		Interval:    time.Hour,
		WorkerCount: 2,
		NewsWindow:  time.Hour,
	})

	scheduler.Start()
	defer scheduler.Stop()

	select {
	case <-pruner.called:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected startup prune to run")
	}

	deadline := time.Now().Add(5 * time.Second)
	for warmer.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if warmer.calls.Load() == 0 {
		t.Error("Expected startup news warming to run")
	}
}

func TestSchedulerRetriesFailedTask(t *testing.T) {
	pruner := newCountingPruner(errors.New("database is locked"))
	scheduler := NewScheduler(pruner, nil, SchedulerOptions{Interval: time.Hour})

	scheduler.Start()
	defer scheduler.Stop()

	// first attempt plus one retry after a second
	for i := 0; i < 2; i++ {
		select {
		case <-pruner.called:
		case <-time.After(5 * time.Second):
			t.Fatalf("Expected attempt %d to run", i+1)
		}
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	scheduler := NewScheduler(nil, nil, SchedulerOptions{Interval: time.Hour})
	scheduler.Start()
	scheduler.Stop()

	if err := scheduler.EnqueueTask(NewPruneCacheTask(newCountingPruner(nil))); err == nil {
		t.Error("Expected error when enqueueing on a stopped scheduler")
	}
}

package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeCompleter struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeCompleter) CompleteElapsed(_ context.Context, today time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, today)
	return 0, f.err
}

func (f *fakeCompleter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestRunOncePassesToday(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("db down")}
	s := NewCompletionScheduler(completer, nil, time.Minute, zap.NewNop())
	fixed := time.Date(2024, 12, 3, 18, 0, 0, 0, time.FixedZone("PET", -5*3600))
	s.now = func() time.Time { return fixed }

	s.RunOnce(context.Background())

	if completer.count() != 1 {
		t.Fatalf("calls = %d", completer.count())
	}
	if got := completer.calls[0]; got.Location() != time.UTC || !got.Equal(fixed) {
		t.Fatalf("today = %v", got)
	}
}

func TestRunStopsWithContext(t *testing.T) {
	completer := &fakeCompleter{}
	s := NewCompletionScheduler(completer, nil, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for completer.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("only %d passes ran", completer.count())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

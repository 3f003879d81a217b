package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func startDispatcher(t *testing.T, workers int) (*Dispatcher, context.CancelFunc) {
	t.Helper()
	d := NewDispatcher(workers, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	t.Cleanup(cancel)
	return d, cancel
}

func TestDispatcher_ReturnsJobError(t *testing.T) {
	d, _ := startDispatcher(t, 2)
	boom := errors.New("boom")

	if err := d.Do(context.Background(), "k", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected job error, got %v", err)
	}
	if err := d.Do(context.Background(), "k", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDispatcher_SameKeyNeverOverlaps(t *testing.T) {
	d, _ := startDispatcher(t, 4)

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Do(context.Background(), "project:p1", func(context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("expected at most one concurrent job per key, saw %d", maxActive)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, zerolog.Nop())

	for _, key := range []string{"project:p1", "user:u1", "chat:c1", ""} {
		first := d.shardIndex(key)
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range", first)
		}
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(key); got != first {
				t.Fatalf("shard for %q changed from %d to %d", key, first, got)
			}
		}
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_CallerContextCancelled(t *testing.T) {
	d, _ := startDispatcher(t, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = d.Do(context.Background(), "k", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Do(ctx, "k", func(context.Context) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDispatcher_StoppedRejectsWork(t *testing.T) {
	d, cancel := startDispatcher(t, 1)
	cancel()

	deadline := time.After(time.Second)
	for {
		err := d.Do(context.Background(), "k", func(context.Context) error { return nil })
		if errors.Is(err, ErrStopped) {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("dispatcher kept accepting work after stop, last err %v", err)
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/api/metrics"
	"github.com/vanguard/directory/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned for work submitted after the dispatcher shut down.
var ErrStopped = errors.New("dispatcher stopped")

type job struct {
	ctx  context.Context
	key  string
	fn   func(context.Context) error
	done chan error
}

// Dispatcher routes keyed work to a fixed set of workers using consistent
// hashing on the key, so work for the same key never runs concurrently.
type Dispatcher struct {
	workers []chan job
	stopped chan struct{}
	once    sync.Once
	log     zerolog.Logger
}

var _ ports.Serializer = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.once.Do(func() { close(d.stopped) })
	}()
}

// Do runs fn on the worker that owns key and waits for its result.
func (d *Dispatcher) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}
	idx := d.shardIndex(key)

	select {
	case d.workers[idx] <- j:
		metrics.MutationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			metrics.MutationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			err := j.fn(j.ctx)
			if err != nil {
				d.log.Debug().Err(err).Str("key", j.key).Int("worker_id", id).Msg("keyed job failed")
			}
			j.done <- err
		}
	}
}

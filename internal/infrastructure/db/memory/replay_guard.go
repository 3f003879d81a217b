package memory

import (
	"context"
	"sync"
	"time"
)

type replayEntry struct {
	result  int
	expires time.Time
}

// ReplayGuard is a ttl-bounded in-process map of request outcomes.
type ReplayGuard struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]replayEntry
}

// NewReplayGuard keeps entries for ttl, one hour when ttl <= 0.
func NewReplayGuard(ttl time.Duration) *ReplayGuard {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ReplayGuard{ttl: ttl, now: time.Now, entries: make(map[string]replayEntry)}
}

func (g *ReplayGuard) Lookup(_ context.Context, key string) (int, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[key]
	if !ok {
		return 0, false, nil
	}
	if g.now().After(e.expires) {
		delete(g.entries, key)
		return 0, false, nil
	}
	return e.result, true, nil
}

func (g *ReplayGuard) Remember(_ context.Context, key string, result int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for k, e := range g.entries {
		if now.After(e.expires) {
			delete(g.entries, k)
		}
	}
	g.entries[key] = replayEntry{result: result, expires: now.Add(g.ttl)}
	return nil
}

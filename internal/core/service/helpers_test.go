package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/entity"
	"github.com/vanguard/directory/internal/infrastructure/db/memory"
)

var fixedNow = time.UnixMilli(1720000000000)

// sequentialIDs returns an id generator producing prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newRepos() entity.Repositories {
	return entity.NewRepositories(memory.NewEntityStore(), nil)
}

func newProjectSvc(t *testing.T, opts ProjectOptions) (*ProjectService, entity.Repositories) {
	t.Helper()
	repos := newRepos()
	svc := NewProjectService(repos.Projects, opts, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	svc.newID = sequentialIDs("gen")
	return svc, repos
}

func seedProjects(t *testing.T, repos entity.Repositories) {
	t.Helper()
	if _, err := repos.Projects.EnsureSeed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

var owner = domain.Actor{ID: "u1", Name: "User A", Role: domain.RoleUser, Authenticated: true}
var stranger = domain.Actor{ID: "u2", Name: "User B", Role: domain.RoleUser, Authenticated: true}

func wantInputError(t *testing.T, err error, reason string) {
	t.Helper()
	var ie *domain.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError %q, got %v", reason, err)
	}
	if ie.Reason != reason {
		t.Fatalf("expected reason %q, got %q", reason, ie.Reason)
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("InputError must match ErrInvalidInput")
	}
}

// memoryReplay is a ReplayGuard that can be told to fail.
type memoryReplay struct {
	entries   map[string]int
	lookupErr error
}

func (r *memoryReplay) Lookup(_ context.Context, key string) (int, bool, error) {
	if r.lookupErr != nil {
		return 0, false, r.lookupErr
	}
	n, ok := r.entries[key]
	return n, ok, nil
}

func (r *memoryReplay) Remember(_ context.Context, key string, n int) error {
	if r.entries == nil {
		r.entries = map[string]int{}
	}
	r.entries[key] = n
	return nil
}

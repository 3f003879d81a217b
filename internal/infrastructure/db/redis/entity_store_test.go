package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanguard/directory/internal/core/ports"
	"github.com/vanguard/directory/internal/infrastructure/db/storetest"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestEntityStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.EntityStore {
		_, client := newClient(t)
		return NewEntityStore(client, "test")
	})
}

func TestEntityStore_KeyLayout(t *testing.T) {
	mr, client := newClient(t)
	s := NewEntityStore(client, "")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "project:p1", []byte(`{}`)))
	require.NoError(t, s.IndexAdd(ctx, "projects", "p1"))

	assert.True(t, mr.Exists("directory:doc:project:p1"))
	members, err := mr.ZMembers("directory:idx:projects")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, members)
	seq, err := mr.Get("directory:seq:projects")
	require.NoError(t, err)
	assert.Equal(t, "1", seq)
}

func TestEntityStore_PrefixesIsolate(t *testing.T) {
	_, client := newClient(t)
	a := NewEntityStore(client, "a")
	b := NewEntityStore(client, "b")
	ctx := context.Background()

	require.NoError(t, a.IndexAdd(ctx, "projects", "p1"))
	n, err := b.IndexLen(ctx, "projects")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: time.Second})
	require.NoError(t, err)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestReplayGuard(t *testing.T) {
	mr, client := newClient(t)
	g := NewReplayGuard(client, "test", time.Minute)
	ctx := context.Background()

	_, ok, err := g.Lookup(ctx, "batch")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Remember(ctx, "batch", 12))
	n, ok, err := g.Lookup(ctx, "batch")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	assert.True(t, mr.Exists("test:replay:batch"))

	mr.FastForward(2 * time.Minute)
	_, ok, err = g.Lookup(ctx, "batch")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Package storetest checks that a ports.EntityStore honours the contract the
// entity repositories rely on. Every adapter runs it from its own tests.
package storetest

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanguard/directory/internal/core/ports"
)

// Run exercises store. newStore must return an empty store on each call.
func Run(t *testing.T, newStore func(t *testing.T) ports.EntityStore) {
	t.Run("documents", func(t *testing.T) { documents(t, newStore(t)) })
	t.Run("index order and paging", func(t *testing.T) { paging(t, newStore(t)) })
	t.Run("index add is idempotent", func(t *testing.T) { idempotentAdd(t, newStore(t)) })
	t.Run("index remove", func(t *testing.T) { remove(t, newStore(t)) })
	t.Run("invalid cursor", func(t *testing.T) { invalidCursor(t, newStore(t)) })
	t.Run("stale cursor", func(t *testing.T) { staleCursor(t, newStore(t)) })
	t.Run("ping", func(t *testing.T) { require.NoError(t, newStore(t).Ping(context.Background())) })
}

func documents(t *testing.T, s ports.EntityStore) {
	ctx := context.Background()

	_, err := s.Get(ctx, "project:none")
	require.ErrorIs(t, err, ports.ErrKeyNotFound)

	ok, err := s.Exists(ctx, "project:p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "project:p1", []byte(`{"id":"p1"}`)))
	require.NoError(t, s.Put(ctx, "project:p2", []byte(`{"id":"p2"}`)))
	require.NoError(t, s.Put(ctx, "project:p1", []byte(`{"id":"p1","v":2}`)))

	got, err := s.Get(ctx, "project:p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","v":2}`, string(got))

	many, err := s.GetMany(ctx, []string{"project:p2", "project:missing", "project:p1"})
	require.NoError(t, err)
	require.Len(t, many, 3)
	assert.JSONEq(t, `{"id":"p2"}`, string(many[0]))
	assert.Nil(t, many[1])
	assert.NotNil(t, many[2])

	deleted, err := s.Delete(ctx, "project:p1")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.Delete(ctx, "project:p1")
	require.NoError(t, err)
	assert.False(t, deleted)

	ok, err = s.Exists(ctx, "project:p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func paging(t *testing.T, s ports.EntityStore) {
	ctx := context.Background()

	empty, err := s.IndexPage(ctx, "projects", "", 10)
	require.NoError(t, err)
	assert.Empty(t, empty.IDs)
	assert.Empty(t, empty.Next)

	var want []string
	for i := 1; i <= 7; i++ {
		id := "p" + strconv.Itoa(i)
		want = append(want, id)
		require.NoError(t, s.IndexAdd(ctx, "projects", id))
	}
	// Another index must not leak into this one.
	require.NoError(t, s.IndexAdd(ctx, "users", "u1"))

	n, err := s.IndexLen(ctx, "projects")
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	var got []string
	cursor := ""
	pages := 0
	for {
		page, err := s.IndexPage(ctx, "projects", cursor, 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.IDs), 3)
		got = append(got, page.IDs...)
		pages++
		if page.Next == "" {
			break
		}
		cursor = page.Next
		require.Less(t, pages, 10, "paging did not terminate")
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, pages)

	exact, err := s.IndexPage(ctx, "projects", "", 7)
	require.NoError(t, err)
	assert.Len(t, exact.IDs, 7)
	assert.Empty(t, exact.Next, "an exactly full page has no next cursor")
}

func idempotentAdd(t *testing.T, s ports.EntityStore) {
	ctx := context.Background()
	require.NoError(t, s.IndexAdd(ctx, "projects", "a"))
	require.NoError(t, s.IndexAdd(ctx, "projects", "b"))
	require.NoError(t, s.IndexAdd(ctx, "projects", "a"))

	n, err := s.IndexLen(ctx, "projects")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	page, err := s.IndexPage(ctx, "projects", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, page.IDs)
}

func remove(t *testing.T, s ports.EntityStore) {
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.IndexAdd(ctx, "projects", id))
	}

	removed, err := s.IndexRemove(ctx, "projects", "b")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.IndexRemove(ctx, "projects", "b")
	require.NoError(t, err)
	assert.False(t, removed)

	page, err := s.IndexPage(ctx, "projects", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, page.IDs)

	// A re-added id goes to the end.
	require.NoError(t, s.IndexAdd(ctx, "projects", "b"))
	page, err = s.IndexPage(ctx, "projects", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, page.IDs)
}

func invalidCursor(t *testing.T, s ports.EntityStore) {
	ctx := context.Background()
	for _, c := range []string{"abc", "-1", "1.5"} {
		_, err := s.IndexPage(ctx, "projects", c, 10)
		assert.ErrorIs(t, err, ports.ErrInvalidCursor, "cursor %q", c)
	}
}

// A cursor whose entry was removed resumes at the next surviving entry.
func staleCursor(t *testing.T, s ports.EntityStore) {
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.IndexAdd(ctx, "projects", id))
	}
	first, err := s.IndexPage(ctx, "projects", "", 2)
	require.NoError(t, err)
	require.NotEmpty(t, first.Next)

	_, err = s.IndexRemove(ctx, "projects", "c")
	require.NoError(t, err)

	next, err := s.IndexPage(ctx, "projects", first.Next, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, next.IDs)
	assert.Empty(t, next.Next)
}

// Package memory provides in-process implementations of the persistence
// ports, used by tests and STORE_DRIVER=memory development runs.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/vanguard/directory/internal/core/ports"
)

var _ ports.EntityStore = (*EntityStore)(nil)

type indexEntry struct {
	id  string
	seq int64
}

type index struct {
	seq     int64
	entries []indexEntry // ascending seq
	pos     map[string]int64
}

// EntityStore keeps documents and indexes in maps guarded by one mutex.
type EntityStore struct {
	mu      sync.RWMutex
	docs    map[string][]byte
	indexes map[string]*index
}

func NewEntityStore() *EntityStore {
	return &EntityStore{
		docs:    make(map[string][]byte),
		indexes: make(map[string]*index),
	}
}

func (s *EntityStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.docs[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return clone(v), nil
}

func (s *EntityStore) GetMany(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := s.docs[k]; ok {
			out[i] = clone(v)
		}
	}
	return out, nil
}

func (s *EntityStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[key]
	return ok, nil
}

func (s *EntityStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = clone(value)
	return nil
}

func (s *EntityStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[key]; !ok {
		return false, nil
	}
	delete(s.docs, key)
	return true, nil
}

func (s *EntityStore) IndexAdd(_ context.Context, name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexes[name]
	if idx == nil {
		idx = &index{pos: make(map[string]int64)}
		s.indexes[name] = idx
	}
	if _, ok := idx.pos[id]; ok {
		return nil
	}
	idx.seq++
	idx.pos[id] = idx.seq
	idx.entries = append(idx.entries, indexEntry{id: id, seq: idx.seq})
	return nil
}

func (s *EntityStore) IndexRemove(_ context.Context, name, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexes[name]
	if idx == nil {
		return false, nil
	}
	seq, ok := idx.pos[id]
	if !ok {
		return false, nil
	}
	delete(idx.pos, id)
	i := idx.search(seq)
	idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
	return true, nil
}

func (s *EntityStore) IndexPage(_ context.Context, name, cursor string, limit int) (ports.IndexPage, error) {
	if limit < 1 {
		limit = 1
	}
	from := int64(0)
	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil || n < 0 {
			return ports.IndexPage{}, ports.ErrInvalidCursor
		}
		from = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexes[name]
	if idx == nil {
		return ports.IndexPage{IDs: []string{}}, nil
	}

	start := idx.search(from)
	end := start + limit
	page := ports.IndexPage{IDs: make([]string, 0, limit)}
	for i := start; i < end && i < len(idx.entries); i++ {
		page.IDs = append(page.IDs, idx.entries[i].id)
	}
	if end < len(idx.entries) {
		page.Next = strconv.FormatInt(idx.entries[end].seq, 10)
	}
	return page, nil
}

func (s *EntityStore) IndexLen(_ context.Context, name string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexes[name]
	if idx == nil {
		return 0, nil
	}
	return int64(len(idx.entries)), nil
}

func (s *EntityStore) Ping(context.Context) error { return nil }

// search returns the position of the first entry with seq >= from.
func (i *index) search(from int64) int {
	return sort.Search(len(i.entries), func(n int) bool { return i.entries[n].seq >= from })
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

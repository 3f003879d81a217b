// Package entity implements typed CRUD with an ordered per-kind index on top
// of a ports.EntityStore.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

// Kind describes one entity category.
type Kind[T any] struct {
	// Name prefixes document keys, e.g. "project" -> "project:p1".
	Name string
	// Index names the ordered id index, e.g. "projects".
	Index    string
	ID       func(T) string
	SetID    func(T, string) T
	NotFound error
	Seed     func() []T
}

// Indexed is the generic repository for one Kind.
type Indexed[T any] struct {
	kind   Kind[T]
	store  ports.EntityStore
	serial ports.Serializer
}

var _ ports.EntityRepository[domain.Project] = (*Indexed[domain.Project])(nil)

// New returns an Indexed repository for kind backed by store.
func New[T any](store ports.EntityStore, kind Kind[T]) *Indexed[T] {
	return &Indexed[T]{kind: kind, store: store}
}

// WithSerializer routes Mutate calls through s so that mutations of the same
// id run one at a time.
func (e *Indexed[T]) WithSerializer(s ports.Serializer) *Indexed[T] {
	e.serial = s
	return e
}

// Kind returns the kind definition.
func (e *Indexed[T]) Kind() Kind[T] { return e.kind }

func (e *Indexed[T]) key(id string) string {
	return e.kind.Name + ":" + id
}

func (e *Indexed[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	raw, err := e.store.Get(ctx, e.key(id))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return zero, e.kind.NotFound
		}
		return zero, fmt.Errorf("get %s %s: %w", e.kind.Name, id, err)
	}
	return e.decode(id, raw)
}

func (e *Indexed[T]) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := e.store.Exists(ctx, e.key(id))
	if err != nil {
		return false, fmt.Errorf("exists %s %s: %w", e.kind.Name, id, err)
	}
	return ok, nil
}

// Create writes record and appends its id to the index. An existing record
// with the same id is overwritten and keeps its index position.
func (e *Indexed[T]) Create(ctx context.Context, record T) (T, error) {
	id := e.kind.ID(record)
	if id == "" {
		return record, fmt.Errorf("create %s: empty id", e.kind.Name)
	}
	if err := e.put(ctx, id, record); err != nil {
		return record, err
	}
	if err := e.store.IndexAdd(ctx, e.kind.Index, id); err != nil {
		return record, fmt.Errorf("index %s %s: %w", e.kind.Name, id, err)
	}
	return record, nil
}

// Mutate reads the current state, applies fn and writes the result back.
// The returned record's id is always pinned to id.
func (e *Indexed[T]) Mutate(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var out T
	run := func(ctx context.Context) error {
		cur, err := e.Get(ctx, id)
		if err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		next = e.kind.SetID(next, id)
		if err := e.put(ctx, id, next); err != nil {
			return err
		}
		out = next
		return nil
	}

	var err error
	if e.serial != nil {
		err = e.serial.Do(ctx, e.key(id), run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (e *Indexed[T]) Update(ctx context.Context, id string, patch ports.Patch[T]) (T, error) {
	return e.Mutate(ctx, id, func(cur T) (T, error) {
		return patch.Apply(cur), nil
	})
}

// Delete removes the record and its index entry and reports whether a
// record existed.
func (e *Indexed[T]) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := e.store.Delete(ctx, e.key(id))
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", e.kind.Name, id, err)
	}
	if _, err := e.store.IndexRemove(ctx, e.kind.Index, id); err != nil {
		return removed, fmt.Errorf("unindex %s %s: %w", e.kind.Name, id, err)
	}
	return removed, nil
}

// DeleteMany deletes every id independently and returns how many records
// were actually removed. Missing and repeated ids count zero.
func (e *Indexed[T]) DeleteMany(ctx context.Context, ids []string) (int, error) {
	seen := make(map[string]struct{}, len(ids))
	count := 0
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		removed, err := e.Delete(ctx, id)
		if err != nil {
			return count, err
		}
		if removed {
			count++
		}
	}
	return count, nil
}

// List returns up to limit records in index order starting at cursor.
// Index entries without a document are skipped.
func (e *Indexed[T]) List(ctx context.Context, cursor string, limit int) (ports.Page[T], error) {
	if limit < 1 {
		limit = 1
	}
	page, err := e.store.IndexPage(ctx, e.kind.Index, cursor, limit)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCursor) {
			return ports.Page[T]{}, domain.NewInputError("Invalid cursor")
		}
		return ports.Page[T]{}, fmt.Errorf("list %s: %w", e.kind.Index, err)
	}

	items := make([]T, 0, len(page.IDs))
	if len(page.IDs) > 0 {
		keys := make([]string, len(page.IDs))
		for i, id := range page.IDs {
			keys[i] = e.key(id)
		}
		raws, err := e.store.GetMany(ctx, keys)
		if err != nil {
			return ports.Page[T]{}, fmt.Errorf("list %s: %w", e.kind.Index, err)
		}
		for i, raw := range raws {
			if raw == nil {
				continue
			}
			v, err := e.decode(page.IDs[i], raw)
			if err != nil {
				return ports.Page[T]{}, err
			}
			items = append(items, v)
		}
	}
	return ports.Page[T]{Items: items, Next: page.Next}, nil
}

// EnsureSeed writes the seed fixtures when the index is empty and returns
// how many records it wrote.
func (e *Indexed[T]) EnsureSeed(ctx context.Context) (int, error) {
	n, err := e.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 || e.kind.Seed == nil {
		return 0, nil
	}
	seeded := 0
	for _, rec := range e.kind.Seed() {
		if _, err := e.Create(ctx, rec); err != nil {
			return seeded, fmt.Errorf("seed %s: %w", e.kind.Index, err)
		}
		seeded++
	}
	return seeded, nil
}

func (e *Indexed[T]) Count(ctx context.Context) (int64, error) {
	n, err := e.store.IndexLen(ctx, e.kind.Index)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", e.kind.Index, err)
	}
	return n, nil
}

func (e *Indexed[T]) put(ctx context.Context, id string, record T) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", e.kind.Name, id, err)
	}
	if err := e.store.Put(ctx, e.key(id), raw); err != nil {
		return fmt.Errorf("put %s %s: %w", e.kind.Name, id, err)
	}
	return nil
}

func (e *Indexed[T]) decode(id string, raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s %s: %w", e.kind.Name, id, err)
	}
	return v, nil
}

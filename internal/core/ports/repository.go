package ports

import "context"

// Page is one page of entities plus the cursor to the next one.
type Page[T any] struct {
	Items []T
	Next  string
}

// Patch is an explicit partial update for an entity of type T.
type Patch[T any] interface {
	Apply(current T) T
}

// EntityRepository is typed CRUD over one entity kind with an ordered index.
type EntityRepository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, record T) (T, error)
	Mutate(ctx context.Context, id string, fn func(T) (T, error)) (T, error)
	Update(ctx context.Context, id string, patch Patch[T]) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
	List(ctx context.Context, cursor string, limit int) (Page[T], error)
	EnsureSeed(ctx context.Context) (int, error)
	Count(ctx context.Context) (int64, error)
}

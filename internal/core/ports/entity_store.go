package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by EntityStore.Get when no document exists.
var ErrKeyNotFound = errors.New("key not found")

// ErrInvalidCursor is returned by EntityStore.IndexPage for cursors it did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

// IndexPage is one window over an ordered index.
type IndexPage struct {
	IDs []string
	// Next is the cursor of the first id after this page, empty when exhausted.
	Next string
}

// EntityStore is the key-value backing store shared by every entity kind.
//
// Documents are opaque byte blobs addressed by key. Indexes are named,
// insertion-ordered sets of ids; adding an id that is already present keeps
// its original position.
type EntityStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns one entry per key, nil where the key is absent.
	GetMany(ctx context.Context, keys []string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, key string) (bool, error)

	IndexAdd(ctx context.Context, index, id string) error
	IndexRemove(ctx context.Context, index, id string) (bool, error)
	// IndexPage returns up to limit ids starting at cursor (empty = start).
	IndexPage(ctx context.Context, index, cursor string, limit int) (IndexPage, error)
	IndexLen(ctx context.Context, index string) (int64, error)

	Ping(ctx context.Context) error
}

// Serializer runs fn with exclusive access to key within the process.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// ReplayGuard remembers the outcome of keyed requests for a limited time.
type ReplayGuard interface {
	// Lookup returns the remembered result for key, ok=false if unseen.
	Lookup(ctx context.Context, key string) (result int, ok bool, err error)
	Remember(ctx context.Context, key string, result int) error
}

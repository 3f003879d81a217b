package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vanguard/directory/internal/core/ports"
	"github.com/vanguard/directory/internal/infrastructure/db/storetest"
)

// Set MONGO_TEST_URI (e.g. mongodb://localhost:27017) to run against a server.
func TestEntityStore_Contract(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	storetest.Run(t, func(t *testing.T) ports.EntityStore {
		ctx := context.Background()
		db, disconnect, err := Connect(ctx, Config{URI: uri, Database: "directory_test_" + uuid.NewString()[:8]})
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = db.Drop(context.Background())
			_ = disconnect(context.Background())
		})

		s := NewEntityStore(db)
		require.NoError(t, s.EnsureIndexes(ctx))
		return s
	})
}

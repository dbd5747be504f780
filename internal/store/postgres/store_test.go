package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/store/storetest"
)

// Set ARCANUM_TEST_POSTGRES_DSN to a scratch database to run these tests.
// Every case starts by emptying both tables.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("ARCANUM_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ARCANUM_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.pool.Exec(ctx, `TRUNCATE cards, tutorials`)
	require.NoError(t, err)
	return s
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), " ")
	require.Error(t, err)
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return openTestStore(t)
	})
}

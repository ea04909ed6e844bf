package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

func openSQLite(t *testing.T) Collection {
	t.Helper()
	cfg := config.DatabaseConfig{URL: "sqlite:///" + filepath.Join(t.TempDir(), "contacts.db")}
	coll, err := DialSQL(cfg, zap.NewNop())(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = coll.Close(context.Background()) })
	return coll
}

func TestSQLCollectionInsertAndList(t *testing.T) {
	coll := openSQLite(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := domain.NewContactInquiry(domain.Submission{Name: "Ana", Email: "ana@x.com", Message: "Hi"}, base)
	second := domain.NewContactInquiry(domain.Submission{Name: "Bo", Email: "bo@x.com", Message: "Hello\nthere"}, base.Add(time.Minute))

	require.NoError(t, coll.Insert(ctx, first))
	require.NoError(t, coll.Insert(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := coll.List(ctx, 0, 10)
	require.NoError(t, err)

	want := []domain.ContactInquiry{*second, *first}
	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	page, err := coll.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Ana", page[0].Name)
}

func TestLazySQLHandle(t *testing.T) {
	cfg := config.DatabaseConfig{URL: "sqlite:///" + filepath.Join(t.TempDir(), "lazy.db")}
	lazy := NewLazy[Collection]("database", 5*time.Second, DialSQL(cfg, zap.NewNop()))
	defer lazy.Close(context.Background())

	a, err := lazy.Get(context.Background())
	require.NoError(t, err)
	b, err := lazy.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestDialMongoUnreachable(t *testing.T) {
	dial := DialMongo(config.MongoConfig{
		URI:        "mongodb://127.0.0.1:1/?connectTimeoutMS=200",
		Database:   "portfolio",
		Collection: "contacts",
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := dial(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping failed")
}

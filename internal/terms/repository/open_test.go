package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/termspage/termspage/internal/config"
	"github.com/termspage/termspage/internal/terms"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *config.Config {
	return &config.Config{Store: config.StoreConfig{
		URL:            url,
		PoolMax:        5,
		IdleTimeout:    10 * time.Second,
		ConnectTimeout: 5 * time.Second,
	}}
}

func TestOpenMemory(t *testing.T) {
	repo, err := Open(context.Background(), testConfig("memory://"))
	require.NoError(t, err)
	require.IsType(t, &MemoryRepo{}, repo)
}

func TestOpenSQLiteFile(t *testing.T) {
	ctx := context.Background()
	url := "sqlite://" + filepath.Join(t.TempDir(), "terms.db")

	repo, err := Open(ctx, testConfig(url))
	require.NoError(t, err)
	_, err = SeedIfEmpty(ctx, repo, terms.Defaults())
	require.NoError(t, err)
	require.NoError(t, repo.Close(ctx))

	// a second process sees the persisted rows and does not reseed
	repo, err = Open(ctx, testConfig(url))
	require.NoError(t, err)
	defer repo.Close(ctx)
	n, err := SeedIfEmpty(ctx, repo, terms.Defaults())
	require.NoError(t, err)
	require.Zero(t, n)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestOpenUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), testConfig("ftp://example"))
	require.Error(t, err)
}

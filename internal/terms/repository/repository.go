package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/termspage/termspage/internal/terms"
)

var (
	ErrNotFound = errors.New("terms document not found")
)

// Repository is the persistence contract shared by every entry point.
//
// InsertIgnore must be insert-if-absent at the storage layer: a document whose
// (lang, slug) already exists is skipped without error and without aborting
// the rest of the batch. Concurrent first-run seeding relies on this.
type Repository interface {
	Get(ctx context.Context, lang, slug string) (*terms.Document, error)
	Count(ctx context.Context) (int64, error)
	InsertIgnore(ctx context.Context, docs []terms.Document) (int, error)
	List(ctx context.Context) ([]*terms.Document, error)
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// SeedIfEmpty inserts docs when the store holds no documents at all and
// returns how many were written. The count check and the insert are not
// atomic; duplicate inserts from a racing seeder are dropped by InsertIgnore.
func SeedIfEmpty(ctx context.Context, repo Repository, docs []terms.Document) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count terms: %w", err)
	}
	if n > 0 || len(docs) == 0 {
		return 0, nil
	}
	inserted, err := repo.InsertIgnore(ctx, docs)
	if err != nil {
		return inserted, fmt.Errorf("seed terms: %w", err)
	}
	return inserted, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/pkg/metrics"
)

var (
	ErrNotFound = errors.New("not found")
)

// Cache is the read-through cache consulted before the store.
type Cache interface {
	Get(ctx context.Context, lang string) (*terms.Response, bool)
	Set(ctx context.Context, lang string, r *terms.Response)
}

// Reader is what the HTTP layer needs; both Service and OneShot satisfy it.
type Reader interface {
	Get(ctx context.Context, rawLang string) (*terms.Response, error)
	Lang(rawLang string) string
}

// Service reads terms through a cache backed by a repository.
type Service struct {
	repo        repository.Repository
	cache       Cache
	defaults    []terms.Document
	defaultLang string
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultLang sets the language used when a request names none.
func WithDefaultLang(lang string) Option {
	return func(s *Service) {
		if lang != "" {
			s.defaultLang = lang
		}
	}
}

func New(repo repository.Repository, cache Cache, defaults []terms.Document, opts ...Option) *Service {
	s := &Service{repo: repo, cache: cache, defaults: defaults, defaultLang: terms.DefaultLang}
	for _, o := range opts {
		o(s)
	}
	return s
}

// EnsureSeeded populates an empty store with the default documents. It is
// the explicit initialization phase and is not called from Get.
func (s *Service) EnsureSeeded(ctx context.Context) (int, error) {
	n, err := repository.SeedIfEmpty(ctx, s.repo, s.defaults)
	if n > 0 {
		metrics.SeededDocuments.Add(float64(n))
	}
	return n, err
}

// Warm loads every stored document of the default slug into the cache.
func (s *Service) Warm(ctx context.Context) (int, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list terms: %w", err)
	}
	n := 0
	for _, d := range docs {
		if d.Slug != terms.DefaultSlug {
			continue
		}
		s.cache.Set(ctx, d.Lang, terms.NewResponse(d.Lang, d))
		n++
	}
	return n, nil
}

// Get returns the terms for rawLang after normalization. Only successful
// lookups are cached; ErrNotFound results are retried against the store on
// every request.
func (s *Service) Get(ctx context.Context, rawLang string) (*terms.Response, error) {
	lang := s.Lang(rawLang)
	if r, ok := s.cache.Get(ctx, lang); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return r, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	d, err := s.repo.Get(ctx, lang, terms.DefaultSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("terms for %q: %w", lang, ErrNotFound)
		}
		return nil, fmt.Errorf("get terms %q: %w", lang, err)
	}
	r := terms.NewResponse(lang, d)
	s.cache.Set(ctx, lang, r)
	return r, nil
}

// Lang normalizes a raw request value the way Get does.
func (s *Service) Lang(rawLang string) string {
	return terms.NormalizeLang(rawLang, s.defaultLang)
}

// Ready pings the backing store.
func (s *Service) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

package service

import (
	"context"

	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/internal/terms/cache"
	"github.com/termspage/termspage/internal/terms/repository"
	"github.com/termspage/termspage/pkg/logger"
)

// Opener acquires a store connection for a single invocation.
type Opener func(ctx context.Context) (repository.Repository, error)

// OneShot serves each call with its own store connection and no cache, for
// runtimes that start a process per request.
type OneShot struct {
	open     Opener
	defaults []terms.Document
	opts     []Option
}

func NewOneShot(open Opener, defaults []terms.Document, opts ...Option) *OneShot {
	return &OneShot{open: open, defaults: defaults, opts: opts}
}

func (o *OneShot) Get(ctx context.Context, rawLang string) (*terms.Response, error) {
	repo, err := o.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Warnf("close terms store: %v", err)
		}
	}()

	svc := New(repo, cache.Noop{}, o.defaults, o.opts...)
	// no separate init phase exists per process here, so check every call
	if _, err := svc.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	return svc.Get(ctx, rawLang)
}

func (o *OneShot) Lang(rawLang string) string {
	return New(nil, cache.Noop{}, nil, o.opts...).Lang(rawLang)
}

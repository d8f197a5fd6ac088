package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/termspage/termspage/internal/terms"
	"github.com/termspage/termspage/pkg/logger"
)

// Redis layers a shared Redis tier behind a process-local Memory cache so
// several server replicas warm each other. Values are stored as JSON under
// prefix+lang with no TTL. Redis failures degrade to a miss.
type Redis struct {
	client *redis.Client
	prefix string
	local  *Memory
}

// NewRedis creates a Redis-backed cache. Prefix may be empty.
func NewRedis(client *redis.Client, prefix string, local *Memory) *Redis {
	if prefix == "" {
		prefix = "terms:"
	}
	if local == nil {
		local = NewMemory()
	}
	return &Redis{client: client, prefix: prefix, local: local}
}

func (r *Redis) key(lang string) string { return r.prefix + lang }

func (r *Redis) Get(ctx context.Context, lang string) (*terms.Response, bool) {
	if resp, ok := r.local.Get(ctx, lang); ok {
		return resp, true
	}
	b, err := r.client.Get(ctx, r.key(lang)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warnf("terms cache: redis get %s: %v", r.key(lang), err)
		}
		return nil, false
	}
	var resp terms.Response
	if err := json.Unmarshal(b, &resp); err != nil {
		logger.Warnf("terms cache: decode %s: %v", r.key(lang), err)
		return nil, false
	}
	r.local.Set(ctx, lang, &resp)
	return &resp, true
}

func (r *Redis) Set(ctx context.Context, lang string, resp *terms.Response) {
	r.local.Set(ctx, lang, resp)
	b, err := json.Marshal(resp)
	if err != nil {
		logger.Warnf("terms cache: encode %s: %v", lang, err)
		return
	}
	if err := r.client.Set(ctx, r.key(lang), b, 0).Err(); err != nil {
		logger.Warnf("terms cache: redis set %s: %v", r.key(lang), err)
	}
}

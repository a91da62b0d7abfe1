// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const defaultTTL = time.Hour

// LoadFunc loads the value from the source of truth on a cache miss.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// CachedQuery is a read-through cache for one key. Concurrent misses share a single load.
// A nil ICache turns every Get into a direct load.
type CachedQuery[T any] struct {
	cache  ICache
	key    string
	load   LoadFunc[T]
	ttl    time.Duration
	prefix string
	group  singleflight.Group
	// gen is bumped by Invalidate; a load that started under an older gen is not stored
	gen atomic.Uint64
}

type CachedQueryOption[T any] func(*CachedQuery[T])

func WithTTL[T any](ttl time.Duration) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		if ttl > 0 {
			cq.ttl = ttl
		}
	}
}

// WithLogPrefix tags the debug logs of this query
func WithLogPrefix[T any](prefix string) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.prefix = prefix
	}
}

func NewCachedQuery[T any](cache ICache, key string, load LoadFunc[T], opts ...CachedQueryOption[T]) *CachedQuery[T] {
	cq := &CachedQuery[T]{
		cache:  cache,
		key:    key,
		load:   load,
		ttl:    defaultTTL,
		prefix: "[CachedQuery]",
	}
	for _, opt := range opts {
		opt(cq)
	}
	return cq
}

func (cq *CachedQuery[T]) Get(ctx context.Context) (T, error) {
	if cq.cache == nil {
		return cq.load(ctx)
	}
	if v, ok := cq.lookup(ctx); ok {
		return v, nil
	}

	v, err, shared := cq.group.Do(cq.key, func() (any, error) {
		gen := cq.gen.Load()
		loaded, err := cq.load(ctx)
		if err != nil {
			return nil, err
		}
		cq.store(ctx, gen, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, errors.Wrapf(err, "load %s", cq.key)
	}
	if shared {
		log.Debugw(cq.prefix+" shared load", "key", cq.key)
	}
	return v.(T), nil
}

// Invalidate drops the cached value; the next Get reloads it.
func (cq *CachedQuery[T]) Invalidate(ctx context.Context) error {
	if cq.cache == nil {
		return nil
	}
	cq.gen.Add(1)
	cq.group.Forget(cq.key)
	if err := cq.cache.Del(ctx, cq.key).Err(); err != nil {
		return errors.Wrapf(err, "invalidate %s", cq.key)
	}
	log.Debugw(cq.prefix+" invalidated", "key", cq.key)
	return nil
}

func (cq *CachedQuery[T]) lookup(ctx context.Context) (T, bool) {
	var v T
	raw, err := cq.cache.Get(ctx, cq.key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		log.Debugw(cq.prefix+" miss", "key", cq.key)
		return v, false
	case err != nil:
		log.Warnw(cq.prefix+" cache read failed", "key", cq.key, "error", err)
		return v, false
	}
	if err := sonic.UnmarshalString(raw, &v); err != nil {
		log.Warnw(cq.prefix+" dropping undecodable entry", "key", cq.key, "error", err)
		_ = cq.cache.Del(ctx, cq.key).Err()
		return v, false
	}
	log.Debugw(cq.prefix+" hit", "key", cq.key)
	return v, true
}

// store writes v unless an Invalidate happened since gen was read. The check is
// repeated after Set so a write racing with Invalidate's Del is removed again.
func (cq *CachedQuery[T]) store(ctx context.Context, gen uint64, v T) {
	if cq.gen.Load() != gen {
		log.Debugw(cq.prefix+" skip stale store", "key", cq.key)
		return
	}
	raw, err := sonic.MarshalString(v)
	if err != nil {
		log.Warnw(cq.prefix+" cache encode failed", "key", cq.key, "error", err)
		return
	}
	if err := cq.cache.Set(ctx, cq.key, raw, cq.ttl).Err(); err != nil {
		log.Warnw(cq.prefix+" cache write failed", "key", cq.key, "error", err)
		return
	}
	if cq.gen.Load() != gen {
		_ = cq.cache.Del(ctx, cq.key).Err()
	}
}

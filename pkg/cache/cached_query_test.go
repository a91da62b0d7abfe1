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
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCache is an in-memory ICache for tests
type mockCache struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{
		data: make(map[string]string),
		ttl:  make(map[string]time.Duration),
	}
}

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *mockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	m.ttl[key] = expiration
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := int64(0)
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			count++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del", keys)
	cmd.SetVal(count)
	return cmd
}

type testRow struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

func strPtr(s string) *string { return &s }

const rowsKey = "rows"

func TestCachedQuery_Get_CacheHit(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	mc.Set(ctx, "rows", `[{"id":"a","name":"cached"}]`, time.Hour)

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		t.Error("queryFunc should not be called on cache hit")
		return nil, nil
	}, WithLogPrefix[[]testRow]("[Test]"))

	rows, err := cq.Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "cached", *rows[0].Name)
}

func TestCachedQuery_Get_CacheMiss(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	calls := 0

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		calls++
		return []testRow{{ID: "a", Name: strPtr("fresh")}, {ID: "b"}}, nil
	})

	rows, err := cq.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Nil(t, rows[1].Name)
	assert.Contains(t, mc.data, "rows")

	// second call served from cache
	_, err = cq.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCachedQuery_Get_QueryError(t *testing.T) {
	mc := newMockCache()
	boom := errors.New("db down")

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		return nil, boom
	})

	_, err := cq.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load rows")
	assert.NotContains(t, mc.data, "rows")
}

func TestCachedQuery_NilCache(t *testing.T) {
	calls := 0
	cq := NewCachedQuery[[]testRow](nil, rowsKey, func(ctx context.Context) ([]testRow, error) {
		calls++
		return []testRow{}, nil
	})

	for i := 0; i < 2; i++ {
		rows, err := cq.Get(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, cq.Invalidate(context.Background()))
}

func TestCachedQuery_Invalidate(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	calls := 0

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		calls++
		return []testRow{{ID: "a"}}, nil
	})

	_, err := cq.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, cq.Invalidate(ctx))
	assert.NotContains(t, mc.data, "rows")

	_, err = cq.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedQuery_WithTTL(t *testing.T) {
	mc := newMockCache()

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		return []testRow{}, nil
	}, WithTTL[[]testRow](30*time.Second))

	_, err := cq.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mc.ttl["rows"])
}

func TestCachedQuery_CorruptEntryReloaded(t *testing.T) {
	mc := newMockCache()
	ctx := context.Background()
	mc.Set(ctx, "rows", "{not json", time.Hour)

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		return []testRow{{ID: "fresh"}}, nil
	})

	rows, err := cq.Get(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fresh", rows[0].ID)
	assert.JSONEq(t, `[{"id":"fresh","name":null}]`, mc.data["rows"])
}

func TestCachedQuery_ConcurrentMissesShareLoad(t *testing.T) {
	mc := newMockCache()
	var calls atomic.Int32
	release := make(chan struct{})

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		calls.Add(1)
		<-release
		return []testRow{{ID: "a"}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := cq.Get(context.Background())
			assert.NoError(t, err)
			assert.Len(t, rows, 1)
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestCachedQuery_InvalidateDuringLoad(t *testing.T) {
	mc := newMockCache()
	var current atomic.Value
	current.Store("old")
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	cq := NewCachedQuery(mc, rowsKey, func(ctx context.Context) ([]testRow, error) {
		rows := []testRow{{ID: current.Load().(string)}}
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return rows, nil
	})

	ctx := context.Background()
	first := make(chan []testRow, 1)
	go func() {
		rows, err := cq.Get(ctx)
		assert.NoError(t, err)
		first <- rows
	}()

	<-started
	// a write commits while the first read is still loading
	current.Store("new")
	require.NoError(t, cq.Invalidate(ctx))
	close(release)

	assert.Equal(t, "old", (<-first)[0].ID)
	_, cached := mc.data[rowsKey]
	assert.False(t, cached)

	rows, err := cq.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", rows[0].ID)
	assert.Equal(t, int32(2), calls.Load())
}

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
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet 提供缓存依赖
var ProviderSet = wire.NewSet(
	ProvideRedis,
	ProvideICache,
)

// ProvideRedis 提供 Redis 实例，缓存关闭时返回 nil
func ProvideRedis(conf Redis) (redis.UniversalClient, func(), error) {
	client, err := NewRedis(conf)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

// ProvideICache 提供 ICache 接口实例，缓存关闭时返回 nil 接口
func ProvideICache(client redis.UniversalClient, conf Redis) ICache {
	if client == nil {
		return nil
	}
	return NewRedisCache(client, conf.KeyPrefix)
}

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
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/redis/go-redis/v9"
)

const (
	ModeDisabled = "disabled"
	ModeSingle   = "single"
	ModeSentinel = "sentinel"
	ModeCluster  = "cluster"
)

// Redis configures the optional read cache. Address is a comma separated list
// for sentinel and cluster modes. Timeouts are in seconds.
type Redis struct {
	Mode             string
	Address          string
	Password         string
	DB               int
	KeyPrefix        string
	PoolSize         int
	UseTLS           bool
	MasterName       string
	SentinelUsername string
	SentinelPassword string
	DialTimeout      int
	ReadTimeout      int
	WriteTimeout     int
}

// Enabled reports whether a redis connection should be opened
func (r Redis) Enabled() bool {
	return r.Mode != "" && r.Mode != ModeDisabled
}

func (r Redis) addrs() []string {
	var out []string
	for _, a := range strings.Split(r.Address, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// options maps the config onto go-redis universal options.
// The mode decides which concrete client NewUniversalClient builds.
func (r Redis) options() (*redis.UniversalOptions, error) {
	addrs := r.addrs()
	if len(addrs) == 0 {
		return nil, fmt.Errorf("redis address is required in %s mode", r.Mode)
	}
	opts := &redis.UniversalOptions{
		Addrs:        addrs,
		Password:     r.Password,
		PoolSize:     r.PoolSize,
		DialTimeout:  seconds(r.DialTimeout),
		ReadTimeout:  seconds(r.ReadTimeout),
		WriteTimeout: seconds(r.WriteTimeout),
	}
	if r.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	switch r.Mode {
	case ModeSingle:
		opts.Addrs = addrs[:1]
		opts.DB = r.DB
	case ModeSentinel:
		if r.MasterName == "" {
			return nil, fmt.Errorf("redis masterName is required in sentinel mode")
		}
		opts.MasterName = r.MasterName
		opts.DB = r.DB
		opts.SentinelUsername = r.SentinelUsername
		opts.SentinelPassword = r.SentinelPassword
	case ModeCluster:
		opts.IsClusterMode = true
	default:
		return nil, fmt.Errorf("unsupported redis mode: %s", r.Mode)
	}
	return opts, nil
}

// NewRedis connects to redis. It returns a nil client when the cache is disabled.
func NewRedis(cfg Redis) (redis.UniversalClient, error) {
	if !cfg.Enabled() {
		log.Info("redis cache disabled")
		return nil, nil
	}

	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), seconds(max(cfg.DialTimeout, 5)))
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %v: %w", opts.Addrs, err)
	}

	log.Infow("redis connected", "mode", cfg.Mode, "addrs", opts.Addrs)
	return client, nil
}

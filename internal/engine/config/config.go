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

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/platform-settings/internal/engine/service/setting"
	"github.com/go-arcade/platform-settings/internal/pkg/storage"
	"github.com/go-arcade/platform-settings/pkg/cache"
	"github.com/go-arcade/platform-settings/pkg/database"
	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/spf13/viper"
)

const envPrefix = "PLATFORM"

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Storage  storage.Storage
	Metrics  metrics.MetricsConfig
	Setting  setting.Conf
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

// envKeys are bound explicitly so they can be set from the environment
// even when absent from the config file
var envKeys = []string{
	"log.level", "log.output", "log.format", "log.path",
	"http.host", "http.port", "http.auth.secretKey", "http.cors.allowOrigins",
	"database.driver", "database.output",
	"database.mysql.host", "database.mysql.port", "database.mysql.user", "database.mysql.password", "database.mysql.dbname",
	"database.postgres.host", "database.postgres.port", "database.postgres.user", "database.postgres.password", "database.postgres.dbname",
	"database.sqlite.path",
	"redis.mode", "redis.address", "redis.password", "redis.keyPrefix",
	"storage.provider", "storage.endpoint", "storage.accessKey", "storage.secretKey",
	"storage.region", "storage.bucket", "storage.basePath", "storage.publicBaseUrl", "storage.cloudName",
	"setting.parallelUploads",
}

func NewConf(confDir string) *AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		mu.Lock()
		cfg = *loaded
		mu.Unlock()
	})
	return &cfg
}

func newViper() *viper.Viper {
	config := viper.New()
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	for _, key := range envKeys {
		_ = config.BindEnv(key)
	}
	return config
}

// LoadConfigFile load config file. An empty path loads from the environment only.
func LoadConfigFile(confDir string) (*AppConfig, error) {
	config := newViper()
	loaded := new(AppConfig)

	if confDir != "" {
		config.SetConfigFile(confDir) //文件名
		if err := config.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %v", err)
		}

		config.WatchConfig()
		config.OnConfigChange(func(e fsnotify.Event) {
			log.Infof("the configuration changed, re-analyzing the configuration file: %s", e.Name)
			var next AppConfig
			if err := config.Unmarshal(&next); err != nil {
				log.Errorw("failed to unmarshal configuration file", "error", err)
				return
			}
			mu.Lock()
			cfg = next
			mu.Unlock()
		})
	}

	if err := config.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}
	log.Infow("config file loaded",
		"path", confDir,
	)

	return loaded, nil
}

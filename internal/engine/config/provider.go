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
	"github.com/go-arcade/platform-settings/internal/engine/service/setting"
	"github.com/go-arcade/platform-settings/internal/pkg/storage"
	"github.com/go-arcade/platform-settings/pkg/cache"
	"github.com/go-arcade/platform-settings/pkg/database"
	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideStorageConfig,
	ProvideMetricsConfig,
	ProvideSettingConfig,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) *AppConfig {
	return NewConf(configPath)
}

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	httpConfig := &appConf.Http
	httpConfig.SetDefaults()
	return httpConfig
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	logConfig := &appConf.Log
	logConfig.SetDefaults()
	return logConfig
}

// ProvideDatabaseConfig 提供数据库配置
func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	dbConfig := appConf.Database
	dbConfig.SetDefaults()
	return dbConfig
}

// ProvideRedisConfig 提供 Redis 配置
func ProvideRedisConfig(appConf *AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideStorageConfig 提供对象存储配置
func ProvideStorageConfig(appConf *AppConfig) *storage.Storage {
	storageConfig := &appConf.Storage
	storageConfig.SetDefaults()
	return storageConfig
}

// ProvideMetricsConfig 提供 Metrics 配置
func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

// ProvideSettingConfig 提供设置服务配置
func ProvideSettingConfig(appConf *AppConfig) setting.Conf {
	return appConf.Setting
}

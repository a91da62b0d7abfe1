//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/platform-settings/internal/engine/bootstrap"
	"github.com/go-arcade/platform-settings/internal/engine/config"
	"github.com/go-arcade/platform-settings/internal/engine/repo"
	"github.com/go-arcade/platform-settings/internal/engine/router"
	"github.com/go-arcade/platform-settings/internal/engine/service/setting"
	"github.com/go-arcade/platform-settings/internal/pkg/storage"
	"github.com/go-arcade/platform-settings/pkg/cache"
	"github.com/go-arcade/platform-settings/pkg/database"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 日志
		log.ProviderSet,
		// 数据层
		database.ProviderSet,
		cache.ProviderSet,
		repo.ProviderSet,
		// 存储层
		storage.ProviderSet,
		// 指标
		metrics.ProviderSet,
		// 服务层
		setting.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}

func initDatabase(configPath string) (database.Manager, func(), error) {
	panic(wire.Build(
		config.ProvideConf,
		config.ProvideDatabaseConfig,
		database.ProvideManager,
	))
}

func initSettingRepo(configPath string) (repo.ISettingRepository, func(), error) {
	panic(wire.Build(
		config.ProvideConf,
		config.ProvideDatabaseConfig,
		config.ProvideRedisConfig,
		database.ProviderSet,
		cache.ProviderSet,
		repo.ProviderSet,
	))
}

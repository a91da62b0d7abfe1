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

package router

import (
	"github.com/bytedance/sonic"
	"github.com/go-arcade/platform-settings/internal/engine/service/setting"
	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/http/middleware"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/go-arcade/platform-settings/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

const apiPrefix = "/api/v1"

type Router struct {
	Http    *http.Http
	Setting *setting.SettingService
	Metrics *metrics.Server
}

func NewRouter(httpConf *http.Http, settingService *setting.SettingService, metricsServer *metrics.Server) *Router {
	return &Router{
		Http:    httpConf,
		Setting: settingService,
		Metrics: metricsServer,
	}
}

func (rt *Router) Router() *fiber.App {
	conf := rt.Http.FiberConfig()
	conf.JSONEncoder = sonic.Marshal
	conf.JSONDecoder = sonic.Unmarshal
	app := fiber.New(conf)

	// 中间件
	app.Use(
		middleware.ExceptionMiddleware(),
		middleware.RequestMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.CorsMiddleware(rt.Http.Cors),
		middleware.AccessLogMiddleware(rt.Http),
	)

	// 健康检查
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// 版本信息
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	api := app.Group(apiPrefix)
	rt.settingRouter(api, middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey))

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, fiber.StatusNotFound, http.NotFound.Code, "request path not found", c.Path())
	})

	return app
}

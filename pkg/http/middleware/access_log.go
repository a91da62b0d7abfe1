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

package middleware

import (
	"time"

	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// probe endpoints polled by orchestrators and scrapers
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// AccessLogMiddleware logs one line per request. 5xx responses log at error, 4xx at warn.
func AccessLogMiddleware(httpConfig *http.Http) fiber.Handler {
	if httpConfig != nil && !httpConfig.AccessLog {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		if _, quiet := quietPaths[c.Path()]; quiet {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"ip", c.Locals(LocalClientIP),
			"request_id", c.Locals(LocalRequestID),
			"user_agent", c.Get(fiber.HeaderUserAgent),
			"latency", time.Since(start),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Errorw("http request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warnw("http request", fields...)
		default:
			log.Infow("http request", fields...)
		}
		return err
	}
}

package middleware

import (
	"runtime/debug"

	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ExceptionMiddleware turns panics into errors for the app ErrorHandler,
// which answers with a generic 500.
func ExceptionMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.Errorw("panic recovered",
				"path", c.Path(),
				"panic", e,
				"stack", string(debug.Stack()),
			)
		},
	})
}

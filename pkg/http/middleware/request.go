package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	LocalRequestID = "request_id"
	LocalClientIP  = "ip"
)

// RequestMiddleware echoes or generates X-Request-Id and stores it under LocalRequestID
func RequestMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: LocalRequestID,
	})
}

// RealIPMiddleware stores the client address under LocalClientIP, preferring
// the first X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func RealIPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalClientIP, clientIP(c))
		return c.Next()
	}
}

func clientIP(c *fiber.Ctx) string {
	if ips := c.IPs(); len(ips) > 0 && ips[0] != "" {
		return ips[0]
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return c.IP()
}

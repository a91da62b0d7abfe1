package middleware

import (
	"errors"
	"strings"

	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/http/jwt"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// LocalClaims is the fiber Locals key holding *jwt.Claims after a successful check.
const LocalClaims = "claims"

// AuthorizationMiddleware requires a valid bearer token signed with secretKey.
// An empty secretKey disables the check.
func AuthorizationMiddleware(secretKey string) fiber.Handler {
	if secretKey == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	deny := func(c *fiber.Ctx, code http.Code) error {
		return http.WithRepErrMsg(c, fiber.StatusUnauthorized, code.Code, code.Msg, c.Path())
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return deny(c, http.TokenBeEmpty)
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return deny(c, http.AuthorizationIncorrect)
		}

		claims, err := jwt.ParseToken(raw, secretKey)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return deny(c, http.TokenExpired)
		}
		if err != nil {
			log.Warnw("rejected bearer token", "path", c.Path(), "error", err)
			return deny(c, http.InvalidToken)
		}

		c.Locals(LocalClaims, claims)
		log.Debugw("authorized request", "operator", claims.Operator(), "path", c.Path())
		return c.Next()
	}
}

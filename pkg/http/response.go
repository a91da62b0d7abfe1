package http

import (
	"errors"

	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// Code is a business error code with its default message
type Code struct {
	Code int
	Msg  string
}

var (
	BadRequest                    = Code{4000, "Bad request"}
	NotFound                      = Code{4004, "Not found"}
	RequestParameterParsingFailed = Code{4001, "Request parameter parsing failed"}

	// 401
	AuthorizationIncorrect = Code{4403, "The authorization format in the request header is incorrect"}
	InvalidToken           = Code{4405, "Invalid token"}
	TokenBeEmpty           = Code{4406, "Token cannot be empty"}
	TokenExpired           = Code{4407, "Token is expired"}

	InternalError = Code{5000, "Internal error, please contact the administrator"}
)

// ResponseErr is the body of transport level failures (auth, parsing, routing).
// Service results carry their own envelope.
type ResponseErr struct {
	ErrCode int    `json:"code"`
	ErrMsg  string `json:"errMsg"`
	Path    string `json:"path,omitempty"`
}

func WithRepStatus(c *fiber.Ctx, status int, body any) error {
	return c.Status(status).JSON(body)
}

func WithRepErrMsg(c *fiber.Ctx, status int, code int, errMsg string, path string) error {
	return c.Status(status).JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// ErrorHandler renders errors that escape a handler. Only *fiber.Error
// messages reach the client; anything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return WithRepErrMsg(c, fe.Code, fe.Code, fe.Message, c.Path())
	}
	log.Errorw("unhandled request error", "path", c.Path(), "error", err)
	return WithRepErrMsg(c, fiber.StatusInternalServerError, InternalError.Code, InternalError.Msg, c.Path())
}

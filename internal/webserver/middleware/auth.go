package middleware

import (
	"github.com/filedrop/filedrop/internal/webserver/weberror"
	"github.com/labstack/echo/v4"
)

// HeaderAccessKey is the shared-secret header required on upload requests.
const HeaderAccessKey = "ACCESS-KEY"

// Authenticate rejects requests whose ACCESS-KEY header is missing or
// does not match the configured secret, before the body is read.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			key := c.Request().Header.Get(HeaderAccessKey)
			if key == "" {
				return weberror.BadRequest("missing " + HeaderAccessKey + " header")
			}
			if key != secret {
				return weberror.Unauthorized()
			}

			return next(c)
		}
	}
}

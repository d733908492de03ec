package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
)

// Logger logs one line per handled request.
func Logger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()

			if err = next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			log.Infof("%s %s [%d] %s", req.Method, req.RequestURI, c.Response().Status, time.Since(start))
			return err
		}
	}
}

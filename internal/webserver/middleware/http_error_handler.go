package middleware

import (
	"net/http"

	"github.com/filedrop/filedrop/internal/webserver/weberror"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

// NewHTTPErrorHandler translates every failure reaching the engine into
// the fixed status/message table. It is total: unmatched failures fall
// through to 500/INTERNAL_SERVER_ERROR, nothing propagates unhandled.
func NewHTTPErrorHandler(log logger.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		werr := translate(err)
		if werr.Kind == weberror.KindSystem {
			log.Warn(werr.Detail)
		}
		if werr.Kind == weberror.KindInternal {
			log.Error(err)
		}

		if err2 := c.String(werr.HTTPCode(), werr.Message()); err2 != nil {
			log.Errorf("HTTPErrorHandler: %s", err2)
		}
	}
}

func translate(err error) *weberror.Error {
	switch err := errors.Cause(err).(type) {
	case *weberror.Error:
		return err
	case *echo.HTTPError:
		switch err.Code {
		case http.StatusNotFound:
			return &weberror.Error{Kind: weberror.KindNotFound}
		case http.StatusMethodNotAllowed:
			return &weberror.Error{Kind: weberror.KindMethodNotAllowed}
		// The body-size cap surfaces as 413 which the wire contract
		// reports as a client error.
		case http.StatusRequestEntityTooLarge, http.StatusBadRequest:
			return &weberror.Error{Kind: weberror.KindBadRequest, Detail: err.Error()}
		case http.StatusUnauthorized:
			return &weberror.Error{Kind: weberror.KindUnauthorized}
		}
	}
	return &weberror.Error{Kind: weberror.KindInternal, Detail: err.Error()}
}

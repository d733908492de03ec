package webserver

import (
	"io"
	"net/http"
	"strings"

	"github.com/filedrop/filedrop/internal/webserver/service"
	"github.com/filedrop/filedrop/internal/webserver/weberror"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

// DefaultFilename is used when a part carries no filename.
const DefaultFilename = "unnamed.txt"

type upload struct {
	logger   logger.Logger
	ingestor *service.Ingestor
}

// Create ingests every part of the multipart body, in arrival order,
// and replies with the space-joined list of generated relative paths.
func (h *upload) Create(c echo.Context) error {
	c.Set("handler_method", "upload.Create")

	mr, err := c.Request().MultipartReader()
	if err != nil {
		return weberror.BadRequest(err.Error())
	}

	var paths []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return h.reject(err)
		}

		filename := part.FileName()
		if filename == "" {
			filename = DefaultFilename
		}
		contentType := part.Header.Get(echo.HeaderContentType)
		if contentType == "" {
			contentType = echo.MIMEOctetStream
		}

		relpath, err := h.ingestor.Ingest(filename, contentType, part)
		part.Close()
		if err != nil {
			// Files already written by previous parts are not rolled back.
			return h.reject(err)
		}

		paths = append(paths, relpath)
	}

	h.logger.Infof("Uploaded %d file[s]", len(paths))
	return c.String(http.StatusOK, strings.Join(paths, " "))
}

// reject keeps transport-level failures (like the body-size cap) intact
// for the translator and folds everything else into the SYS_ERROR row.
func (h *upload) reject(err error) error {
	if he, ok := errors.Cause(err).(*echo.HTTPError); ok {
		return he
	}
	return weberror.System(err)
}

// Package client implements the transfer client: it pushes local files
// to the hosting server as one streamed multipart request and records
// the resulting URLs in the local provenance document.
package client

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
)

// HeaderAccessKey is the shared-secret header carried by every upload.
const HeaderAccessKey = "ACCESS-KEY"

// An Uploader pushes local files to the hosting server.
type Uploader struct {
	Logger    logger.Logger
	BaseURL   string
	AccessKey string
	// Client is the HTTP client used for the transfer.
	// http.DefaultClient when nil.
	Client *http.Client
	// Progress, when set, observes the bytes consumed per file.
	Progress ProgressFunc
}

type localFile struct {
	path string
	name string
	size int64
}

// Upload sends the given files as one multipart batch and returns the
// resolved URLs, in submission order. One provenance record per file is
// appended at recordsPath; a provenance write failure is logged but
// does not withhold the URLs.
func (u *Uploader) Upload(paths []string, recordsPath string) ([]string, error) {
	files, err := u.validate(paths)
	if err != nil {
		return nil, err
	}

	endpoint, err := joinURL(u.BaseURL, "upload")
	if err != nil {
		return nil, err
	}

	body, contentType := u.multipartBody(files)
	defer body.Close()

	req, err := http.NewRequest(http.MethodPost, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Header.Set(HeaderAccessKey, u.AccessKey)
	req.Header.Set("Content-Type", contentType)

	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrUploadFailed, "%s", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errors.Wrapf(ErrUploadFailed, "%s", strings.TrimSpace(string(payload)))
	}

	// The server returns one relative path per part, space-joined, in
	// the order the parts were submitted.
	relpaths := strings.Fields(string(payload))
	if len(relpaths) != len(files) {
		return nil, errors.Wrapf(ErrPathCountMismatch, "got %d paths for %d files", len(relpaths), len(files))
	}

	urls := make([]string, 0, len(relpaths))
	entries := make([]Record, 0, len(relpaths))
	for i, relpath := range relpaths {
		location, err := joinURL(u.BaseURL, "files", relpath)
		if err != nil {
			return nil, err
		}

		urls = append(urls, location)
		entries = append(entries, Record{
			Time:             time.Now().Format(TimestampFormat),
			OriginalFileName: files[i].name,
			URLLocation:      location,
		})
	}

	// Server-side success is authoritative, local bookkeeping is
	// best-effort: the URLs are returned even if recording fails.
	if err := AppendRecords(recordsPath, entries...); err != nil {
		u.Logger.Warnf("could not record uploads: %s", err)
	}

	return urls, nil
}

// validate fails the whole batch before any network activity if a path
// is missing or not a regular file.
func (u *Uploader) validate(paths []string) ([]localFile, error) {
	files := make([]localFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", p)
		}

		files = append(files, localFile{
			path: p,
			name: filepath.Base(p),
			size: info.Size(),
		})
	}
	return files, nil
}

// multipartBody builds the request body as a stream: each file is read
// in chunks and piped through the multipart writer, never materialized
// whole in memory.
func (u *Uploader) multipartBody(files []localFile) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		var err error
		defer func() {
			pw.CloseWithError(err)
		}()

		for _, file := range files {
			var part io.Writer
			part, err = mw.CreatePart(partHeader(file.name))
			if err != nil {
				return
			}

			var f *os.File
			f, err = os.Open(file.path)
			if err != nil {
				return
			}

			_, err = io.Copy(part, newProgressReader(f, file.name, file.size, u.Progress))
			f.Close()
			if err != nil {
				return
			}
		}

		err = mw.Close()
	}()

	return pr, mw.FormDataContentType()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func partHeader(filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", ContentType(filename))
	return h
}

// ContentType guesses the content type from the filename extension.
func ContentType(filename string) string {
	if ctype := mime.TypeByExtension(filepath.Ext(filename)); ctype != "" {
		return ctype
	}
	return "application/octet-stream"
}

func joinURL(base string, segments ...string) (string, error) {
	location, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "invalid base URL")
	}

	location.Path = path.Join(append([]string{location.Path}, segments...)...)
	return location.String(), nil
}

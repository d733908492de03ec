package client_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/filedrop/filedrop/internal/client"
	"github.com/filedrop/filedrop/internal/database"
	"github.com/filedrop/filedrop/internal/storage"
	"github.com/filedrop/filedrop/internal/webserver"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accessKey = "sesame"

func discardLogger() logger.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logger.WrapLogrus(log)
}

func setupServer(t *testing.T) string {
	t.Helper()

	workspace, err := os.MkdirTemp(os.TempDir(), "filedrop.")
	require.NoError(t, err)

	db, err := database.StormOpen(filepath.Join(workspace, "filedrop.db"))
	require.NoError(t, err)

	engine := webserver.EchoEngine(webserver.Controller{
		Version:  "test",
		Logger:   discardLogger(),
		Database: db,
		Storage:  storage.NewFileSystem(workspace),

		AccessKey:     accessKey,
		StoragePath:   workspace,
		MaxUploadSize: "5G",
	})

	server := httptest.NewServer(engine)
	t.Cleanup(func() {
		server.Close()
		db.Close()
		os.RemoveAll(workspace)
	})
	return server.URL
}

func localFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUploaderUpload(t *testing.T) {
	base := setupServer(t)
	workspace := t.TempDir()

	a := localFile(t, workspace, "a.bin", strings.Repeat("a", 4096))
	b := localFile(t, workspace, "b", "no extension")
	recordsPath := filepath.Join(workspace, "records.json")

	progress := map[string]int64{}
	uploader := client.Uploader{
		Logger:    discardLogger(),
		BaseURL:   base,
		AccessKey: accessKey,
		Progress: func(name string, written, total int64) {
			assert.LessOrEqual(t, written, total)
			assert.GreaterOrEqual(t, written, progress[name])
			progress[name] = written
		},
	}

	urls, err := uploader.Upload([]string{a, b}, recordsPath)
	require.NoError(t, err)
	require.Len(t, urls, 2)

	assert.True(t, strings.HasPrefix(urls[0], base+"/files/"))
	assert.True(t, strings.HasSuffix(urls[0], ".bin"))
	assert.False(t, strings.Contains(filepath.Base(urls[1]), "."))

	// Progress reached each file's total.
	assert.Equal(t, int64(4096), progress["a.bin"])
	assert.Equal(t, int64(len("no extension")), progress["b"])

	// The uploaded files are downloadable at the resolved URLs.
	res, err := http.Get(urls[0])
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 4096), string(payload))

	// One provenance record per file, in submission order.
	entries, err := client.ReadRecords(recordsPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.bin", entries[0].OriginalFileName)
	assert.Equal(t, urls[0], entries[0].URLLocation)
	assert.Equal(t, "b", entries[1].OriginalFileName)
	assert.Equal(t, urls[1], entries[1].URLLocation)
}

func TestUploaderMissingLocalFile(t *testing.T) {
	var requests int64
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer fake.Close()

	workspace := t.TempDir()
	a := localFile(t, workspace, "a.txt", "aaa")

	uploader := client.Uploader{
		Logger:    discardLogger(),
		BaseURL:   fake.URL,
		AccessKey: accessKey,
	}

	_, err := uploader.Upload([]string{a, filepath.Join(workspace, "missing.txt")}, filepath.Join(workspace, "records.json"))
	assert.Equal(t, client.ErrFileNotFound, errors.Cause(err))

	// The batch fails before any network activity.
	assert.Zero(t, atomic.LoadInt64(&requests))
}

func TestUploaderUnauthorized(t *testing.T) {
	base := setupServer(t)
	workspace := t.TempDir()

	a := localFile(t, workspace, "a.txt", "aaa")

	uploader := client.Uploader{
		Logger:    discardLogger(),
		BaseURL:   base,
		AccessKey: "wrong",
	}

	_, err := uploader.Upload([]string{a}, filepath.Join(workspace, "records.json"))
	assert.Equal(t, client.ErrUploadFailed, errors.Cause(err))
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestUploaderPathCountMismatch(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte("2021/06/05/one.txt 2021/06/05/two.txt"))
	}))
	defer fake.Close()

	workspace := t.TempDir()
	a := localFile(t, workspace, "a.txt", "aaa")

	uploader := client.Uploader{
		Logger:    discardLogger(),
		BaseURL:   fake.URL,
		AccessKey: accessKey,
	}

	_, err := uploader.Upload([]string{a}, filepath.Join(workspace, "records.json"))
	assert.Equal(t, client.ErrPathCountMismatch, errors.Cause(err))
}

func TestUploaderRecordFailureStillReturnsURLs(t *testing.T) {
	base := setupServer(t)
	workspace := t.TempDir()

	a := localFile(t, workspace, "a.txt", "aaa")

	uploader := client.Uploader{
		Logger:    discardLogger(),
		BaseURL:   base,
		AccessKey: accessKey,
	}

	// A provenance path under a regular file cannot be written.
	recordsPath := filepath.Join(a, "records.json")

	urls, err := uploader.Upload([]string{a}, recordsPath)
	require.NoError(t, err)
	assert.Len(t, urls, 1)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/octet-stream", client.ContentType("blob"))
	assert.Contains(t, client.ContentType("index.html"), "text/html")
}

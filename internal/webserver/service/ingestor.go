package service

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"path"
	"time"

	"github.com/filedrop/filedrop/internal/database"
	"github.com/filedrop/filedrop/internal/model"
	"github.com/filedrop/filedrop/internal/storage"
	"github.com/pkg/errors"
)

// An Ingestor writes one uploaded part to storage and indexes it.
type Ingestor struct {
	storage storage.Backend
	namer   *storage.Namer
	db      database.Client
}

// NewIngestor returns a new Ingestor.
func NewIngestor(storage storage.Backend, namer *storage.Namer, db database.Client) *Ingestor {
	return &Ingestor{
		storage: storage,
		namer:   namer,
		db:      db,
	}
}

// Ingest drains r into storage under a freshly generated name and
// returns the relative path of the stored file.
func (s *Ingestor) Ingest(filename, contentType string, r io.Reader) (string, error) {
	relpath := s.namer.Name(filename, time.Now().UTC())

	wc, err := s.storage.Writer(relpath)
	if err != nil {
		return "", err
	}
	defer wc.Close()

	h := md5.New()
	w := io.MultiWriter(h, wc)

	n, err := io.Copy(w, r)
	if err != nil {
		return "", errors.Wrap(err, "could not fold form data")
	}

	object := &model.Object{
		Bucket:       path.Dir(relpath),
		Path:         relpath,
		OriginalName: filename,
		Size:         n,
		ContentType:  contentType,
		Checksum:     hex.EncodeToString(h.Sum(nil)),
	}
	if err := s.db.Save(object); err != nil {
		return "", err
	}

	return relpath, nil
}

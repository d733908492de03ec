package storage

import (
	"path"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IdentifierSize is the length of the generated storage identifiers.
// The default URL-safe alphabet at this length makes collisions within
// a single day bucket negligible. It is a uniqueness token, not a
// security boundary.
const IdentifierSize = 21

// A Namer generates collision-resistant storage paths under date buckets.
type Namer struct {
	size int
}

// NewNamer returns a Namer with the default identifier size.
func NewNamer() *Namer {
	return &Namer{size: IdentifierSize}
}

// Name returns the relative storage path for filename at the given
// ingestion time: `YYYY/MM/DD/<identifier>[.ext]`. The extension of the
// original filename is carried over verbatim when present.
func (n *Namer) Name(filename string, at time.Time) string {
	bucket := Bucket(at)
	identifier := gonanoid.Must(n.size)

	if ext := filepath.Ext(filename); ext != "" {
		return path.Join(bucket, identifier+ext)
	}
	return path.Join(bucket, identifier)
}

// Bucket returns the date partition for the given time.
func Bucket(at time.Time) string {
	return at.Format("2006/01/02")
}

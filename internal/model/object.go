package model

// An Object represents an uploaded blob stored on the filesystem.
type Object struct {
	Base `json:",inline" storm:"inline"`

	// Bucket is the date partition (YYYY/MM/DD) the blob lives under.
	Bucket string `json:"bucket" storm:"index"`
	// Path is the generated relative path under the storage root.
	Path string `json:"path" storm:"unique"`

	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
	Checksum     string `json:"checksum"`
}

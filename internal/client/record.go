package client

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// TimestampFormat is the layout of the provenance timestamps.
const TimestampFormat = "01/02/2006 15:04:05"

type (
	// A Record is one provenance entry: what was uploaded and where it
	// now lives. Entries are append-only, never mutated nor removed.
	Record struct {
		Time             string `json:"time"`
		OriginalFileName string `json:"original_file_name"`
		URLLocation      string `json:"url_location"`
	}

	records struct {
		Records []Record `json:"records"`
	}
)

// ReadRecords returns all the entries of the provenance document at
// path, in append order. A missing document yields an empty list.
func ReadRecords(path string) ([]Record, error) {
	payload, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read records")
	}

	var document records
	if err := json.Unmarshal(payload, &document); err != nil {
		return nil, errors.Wrap(err, "could not parse records")
	}
	return document.Records, nil
}

// AppendRecords appends entries to the provenance document at path,
// rewriting the whole document. Not safe for concurrent processes
// against the same path.
func AppendRecords(path string, entries ...Record) error {
	existing, err := ReadRecords(path)
	if err != nil {
		return err
	}

	document := records{Records: append(existing, entries...)}

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize records")
	}

	err = os.WriteFile(path, payload, 0644)
	return errors.Wrap(err, "could not write records")
}

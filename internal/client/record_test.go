package client_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/filedrop/filedrop/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecordsMissingDocument(t *testing.T) {
	workspace := t.TempDir()

	entries, err := client.ReadRecords(filepath.Join(workspace, "records.json"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordsRoundTrip(t *testing.T) {
	workspace := t.TempDir()
	path := filepath.Join(workspace, "records.json")

	for i := 0; i < 5; i++ {
		err := client.AppendRecords(path, client.Record{
			Time:             "06/05/2021 13:37:00",
			OriginalFileName: fmt.Sprintf("file-%d.txt", i),
			URLLocation:      fmt.Sprintf("http://localhost/files/2021/06/05/id-%d.txt", i),
		})
		require.NoError(t, err)
	}

	entries, err := client.ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	for i, entry := range entries {
		assert.Equal(t, "06/05/2021 13:37:00", entry.Time)
		assert.Equal(t, fmt.Sprintf("file-%d.txt", i), entry.OriginalFileName)
		assert.Equal(t, fmt.Sprintf("http://localhost/files/2021/06/05/id-%d.txt", i), entry.URLLocation)
	}
}

func TestReadRecordsCorruptedDocument(t *testing.T) {
	workspace := t.TempDir()
	path := filepath.Join(workspace, "records.json")

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := client.ReadRecords(path)
	assert.Error(t, err)
}

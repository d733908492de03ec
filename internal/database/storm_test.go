package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filedrop/filedrop/internal/database"
	"github.com/filedrop/filedrop/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) database.Client {
	t.Helper()

	workspace, err := os.MkdirTemp(os.TempDir(), "filedrop-db.")
	require.NoError(t, err)

	db, err := database.StormOpen(filepath.Join(workspace, "filedrop.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(workspace)
	})
	return db
}

func TestStormSave(t *testing.T) {
	db := setup(t)

	object := &model.Object{
		Bucket:       "2021/06/05",
		Path:         "2021/06/05/abc.txt",
		OriginalName: "notes.txt",
		Size:         10,
		ContentType:  "text/plain",
	}
	require.NoError(t, db.Save(object))

	assert.NotEmpty(t, object.ID)
	assert.False(t, object.CreatedAt.IsZero())
}

func TestStormFindObjectByPath(t *testing.T) {
	db := setup(t)

	object := &model.Object{
		Bucket:       "2021/06/05",
		Path:         "2021/06/05/abc.txt",
		OriginalName: "notes.txt",
	}
	require.NoError(t, db.Save(object))

	found, err := db.FindObjectByPath("2021/06/05/abc.txt")
	require.NoError(t, err)
	assert.Equal(t, object.ID, found.ID)
	assert.Equal(t, "notes.txt", found.OriginalName)

	_, err = db.FindObjectByPath("2021/06/05/missing.txt")
	assert.True(t, db.IsNotFound(err))
}

func TestStormFindObjectsByBucket(t *testing.T) {
	db := setup(t)

	require.NoError(t, db.Save(&model.Object{Bucket: "2021/06/05", Path: "2021/06/05/one"}))
	require.NoError(t, db.Save(&model.Object{Bucket: "2021/06/05", Path: "2021/06/05/two"}))
	require.NoError(t, db.Save(&model.Object{Bucket: "2021/06/06", Path: "2021/06/06/other"}))

	objects, err := db.FindObjectsByBucket("2021/06/05")
	require.NoError(t, err)
	assert.Len(t, objects, 2)
}

func TestStormDeleteObject(t *testing.T) {
	db := setup(t)

	object := &model.Object{Bucket: "2021/06/05", Path: "2021/06/05/abc"}
	require.NoError(t, db.Save(object))

	require.NoError(t, db.DeleteObject(object.ID))

	_, err := db.FindObjectByPath("2021/06/05/abc")
	assert.True(t, db.IsNotFound(err))

	all, err := db.AllObjects()
	require.NoError(t, err)
	assert.Empty(t, all)
}

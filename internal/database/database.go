package database

import (
	"github.com/filedrop/filedrop/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		ObjectInteraction
	}

	// An ObjectInteraction defines all the methods used to interact with an object record.
	ObjectInteraction interface {
		AllObjects() ([]*model.Object, error)
		FindObjectByPath(path string) (*model.Object, error)
		FindObjectsByBucket(bucket string) ([]*model.Object, error)
		DeleteObject(id string) error
	}
)

package model

import "time"

type (
	// A Model is a generic entity that can be persisted.
	Model interface {
		GetID() string
		SetID(id string)
		SetCreatedAt(t time.Time)
		SetUpdatedAt(t time.Time)
	}

	// Base holds the common fields of a record.
	Base struct {
		ID        string    `json:"id"         storm:"id"`
		CreatedAt time.Time `json:"created_at" storm:"index"`
		UpdatedAt time.Time `json:"updated_at" storm:"index"`
	}
)

// GetID returns the record's identifier.
func (m *Base) GetID() string {
	return m.ID
}

// SetID defines the record's identifier.
func (m *Base) SetID(id string) {
	m.ID = id
}

// SetCreatedAt defines the record's creation time.
func (m *Base) SetCreatedAt(t time.Time) {
	m.CreatedAt = t
}

// SetUpdatedAt defines the record's last update time.
func (m *Base) SetUpdatedAt(t time.Time) {
	m.UpdatedAt = t
}

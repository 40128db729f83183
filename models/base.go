package models

import (
	"time"

	"gorm.io/gorm"
)

// RecordStatus is the lifecycle state shared by every catalog record
type RecordStatus string

const (
	StatusActive   RecordStatus = "active"
	StatusInactive RecordStatus = "inactive"
	StatusDeleted  RecordStatus = "deleted"
)

// Valid reports whether s is a known status
func (s RecordStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	}
	return false
}

// Base holds identity, timestamps and soft-delete state
type Base struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Status    RecordStatus   `gorm:"type:varchar(16);not null;default:active" json:"status"`
}

// BeforeCreate defaults the status of new rows
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusActive
	}
	return nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CategoryStatusActive   = "Active"
	CategoryStatusInactive = "Inactive"
)

// RoomCategory groups rooms sharing a rate class, e.g. "Deluxe".
type RoomCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"uniqueIndex;size:100" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Status      string `gorm:"size:20;default:Active" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

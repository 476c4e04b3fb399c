package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room status values. ReservedDates, not Status alone, is the authoritative
// overlap check: a future-dated hold leaves Status "available" while the
// held dates sit in the calendar.
const (
	RoomStatusAvailable   = "available"
	RoomStatusReserved    = "reserved"
	RoomStatusBooked      = "booked"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	gorm.Model

	Title      string `json:"title"`
	CategoryID uint   `gorm:"index;column:category_id" json:"categoryId"`
	RoomNumber string `gorm:"column:room_number;uniqueIndex;size:50" json:"roomNumber"`

	Price    float64 `json:"price"`
	ExtraBed bool    `gorm:"column:extra_bed;default:false" json:"extraBed"`

	Status         string         `gorm:"size:20;default:available" json:"status"`
	BookedTillDate *time.Time     `gorm:"column:booked_till_date" json:"bookedTillDate,omitempty"`
	OutOfService   bool           `gorm:"column:out_of_service;default:false" json:"outOfService"`
	ReservedDates  datatypes.JSON `gorm:"column:reserved_dates" json:"reservedDates,omitempty"`

	Description string         `gorm:"type:text" json:"description,omitempty"`
	Images      datatypes.JSON `json:"images,omitempty"`

	Category RoomCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

package models

import (
	"time"
)

// Guest is the deduplicated cross-stay profile. Bookings and reservations
// keep their own snapshots; this aggregate only tracks who the guest is and
// how often they stayed.
//
// Identity key: contact phone when present, otherwise the grcNo+bookingRefNo
// pair from the stay that first created the profile.
type Guest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GRCNo        string `gorm:"column:grc_no;size:20;index" json:"grcNo"`
	BookingRefNo string `gorm:"column:booking_ref_no;size:30;index" json:"bookingRefNo"`
	Phone        string `gorm:"size:30;index" json:"phone,omitempty"`

	Salutation string `gorm:"size:20" json:"salutation,omitempty"`
	Name       string `gorm:"size:255" json:"name"`
	Age        int    `json:"age,omitempty"`
	Gender     string `gorm:"size:20" json:"gender,omitempty"`
	PhotoURL   string `gorm:"size:512" json:"photoUrl,omitempty"`

	ContactDetails  ContactDetails  `gorm:"embedded;embeddedPrefix:contact_" json:"contactDetails"`
	IdentityDetails IdentityDetails `gorm:"embedded;embeddedPrefix:identity_" json:"identityDetails"`

	LastVisit   *time.Time `gorm:"column:last_visit" json:"lastVisit,omitempty"`
	TotalVisits int        `gorm:"column:total_visits;default:1" json:"totalVisits"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Booking status values. IsActive is tracked separately: it says whether the
// room is still held by this booking, so "Checked Out" and "Cancelled" both
// imply IsActive=false.
//
// The lifecycle itself only writes "Booked" and "Checked Out"; "Checked In"
// is set by the front desk through Update when the guest physically arrives
// for a stay that was booked in advance.
const (
	BookingStatusBooked     = "Booked"
	BookingStatusCheckedIn  = "Checked In"
	BookingStatusCheckedOut = "Checked Out"
	BookingStatusCancelled  = "Cancelled"
)

// Booking is an active or historical stay.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GRCNo        string `gorm:"column:grc_no;uniqueIndex;size:20" json:"grcNo"`
	BookingRefNo string `gorm:"column:booking_ref_no;uniqueIndex;size:30" json:"bookingRefNo"`

	// Set when this booking was converted from a reservation.
	ReservationRecordID *uint `gorm:"column:reservation_record_id;index" json:"reservationRecordId,omitempty"`

	BTimestamp int64 `gorm:"column:b_timestamp" json:"bTimestamp"`

	CategoryID    uint    `gorm:"column:category_id;index" json:"categoryId"`
	RoomNumber    string  `gorm:"column:room_number;size:50;index" json:"roomNumber"`
	RoomRate      float64 `gorm:"column:room_rate" json:"roomRate"`
	NumberOfRooms int     `gorm:"column:number_of_rooms;default:1" json:"numberOfRooms"`
	IsActive      bool    `gorm:"column:is_active;default:true" json:"isActive"`

	Status string `gorm:"size:20;default:Booked" json:"status"`

	GuestDetails    GuestDetails    `gorm:"embedded;embeddedPrefix:guest_" json:"guestDetails"`
	ContactDetails  ContactDetails  `gorm:"embedded;embeddedPrefix:contact_" json:"contactDetails"`
	IdentityDetails IdentityDetails `gorm:"embedded;embeddedPrefix:identity_" json:"identityDetails"`
	StayDetails     StayDetails     `gorm:"embedded;embeddedPrefix:stay_" json:"bookingInfo"`
	PaymentDetails  PaymentDetails  `gorm:"embedded;embeddedPrefix:payment_" json:"paymentDetails"`
	VehicleDetails  VehicleDetails  `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicleDetails"`

	// Append-only log of stay extensions, see ExtensionEvent.
	ExtensionHistory datatypes.JSON `gorm:"column:extension_history" json:"extensionHistory,omitempty"`

	VIP            bool `gorm:"column:vip;default:false" json:"vip"`
	IsForeignGuest bool `gorm:"column:is_foreign_guest;default:false" json:"isForeignGuest"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Category RoomCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// ExtensionEvent is one entry in a booking's extension history. Entries are
// never mutated after being appended.
type ExtensionEvent struct {
	OriginalCheckIn   *time.Time `json:"originalCheckIn,omitempty"`
	OriginalCheckOut  *time.Time `json:"originalCheckOut,omitempty"`
	ExtendedCheckOut  time.Time  `json:"extendedCheckOut"`
	ExtendedOn        time.Time  `json:"extendedOn"`
	Reason            string     `json:"reason,omitempty"`
	AdditionalAmount  float64    `json:"additionalAmount,omitempty"`
	PaymentMode       string     `json:"paymentMode,omitempty"`
	ApprovedBy        string     `json:"approvedBy,omitempty"`
}

// DecodeExtensionHistory parses the extension_history column.
func DecodeExtensionHistory(raw datatypes.JSON) ([]ExtensionEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var events []ExtensionEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// AppendExtension returns a new history column with the event appended.
// Existing entries are carried over untouched.
func AppendExtension(raw datatypes.JSON, event ExtensionEvent) (datatypes.JSON, error) {
	events, err := DecodeExtensionHistory(raw)
	if err != nil {
		return nil, err
	}
	events = append(events, event)
	out, err := json.Marshal(events)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

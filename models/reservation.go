package models

import (
	"time"
)

// Reservation status values. A converted reservation keeps status
// "Confirmed" with LinkedCheckInID set; conversion is an overlay, not a
// separate state.
const (
	ReservationStatusConfirmed = "Confirmed"
	ReservationStatusTentative = "Tentative"
	ReservationStatusWaiting   = "Waiting"
	ReservationStatusCancelled = "Cancelled"
)

// Reservation is an advance hold on inventory, not yet an active stay.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID string `gorm:"column:reservation_id;uniqueIndex;size:30" json:"reservationId"`
	BookingRefNo  string `gorm:"column:booking_ref_no;uniqueIndex;size:30" json:"bookingRefNo"`
	GRCNo         string `gorm:"column:grc_no;uniqueIndex;size:20" json:"grcNo"`

	RTimestamp int64  `gorm:"column:r_timestamp" json:"rTimestamp"`
	BTimestamp *int64 `gorm:"column:b_timestamp" json:"bTimestamp,omitempty"`

	ReservationType   string `gorm:"size:20" json:"reservationType,omitempty"`
	ModeOfReservation string `gorm:"size:50" json:"modeOfReservation,omitempty"`

	CategoryID     *uint `gorm:"column:category_id;index" json:"categoryId,omitempty"`
	RoomAssignedID *uint `gorm:"column:room_assigned_id;index" json:"roomAssignedId,omitempty"`

	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"checkInDate,omitempty"`
	CheckInTime  string     `gorm:"size:10" json:"checkInTime,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"checkOutDate,omitempty"`
	CheckOutTime string     `gorm:"size:10" json:"checkOutTime,omitempty"`

	NoOfRooms    int     `gorm:"column:no_of_rooms;default:1" json:"noOfRooms"`
	NoOfAdults   int     `json:"noOfAdults,omitempty"`
	NoOfChildren int     `json:"noOfChildren,omitempty"`
	PlanPackage  string  `gorm:"size:100" json:"planPackage,omitempty"`
	Rate         float64 `json:"rate,omitempty"`

	ArrivalFrom        string `gorm:"size:255" json:"arrivalFrom,omitempty"`
	PurposeOfVisit     string `gorm:"size:255" json:"purposeOfVisit,omitempty"`
	SpecialRequests    string `gorm:"size:512" json:"specialRequests,omitempty"`
	Remarks            string `gorm:"size:512" json:"remarks,omitempty"`
	BillingInstruction string `gorm:"size:512" json:"billingInstruction,omitempty"`

	// Guest identity snapshot.
	Salutation  string `gorm:"size:20" json:"salutation,omitempty"`
	GuestName   string `gorm:"size:255" json:"guestName"`
	Nationality string `gorm:"size:100" json:"nationality,omitempty"`
	City        string `gorm:"size:100" json:"city,omitempty"`
	Address     string `gorm:"size:512" json:"address,omitempty"`
	PhoneNo     string `gorm:"size:30" json:"phoneNo,omitempty"`
	MobileNo    string `gorm:"size:30" json:"mobileNo,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	CompanyName string `gorm:"size:255" json:"companyName,omitempty"`

	GSTApplicable bool   `gorm:"column:gst_applicable;default:true" json:"gstApplicable"`
	CompanyGSTIN  string `gorm:"column:company_gstin;size:50" json:"companyGstin,omitempty"`

	PaymentMode     string  `gorm:"size:30" json:"paymentMode,omitempty"`
	AdvancePaid     float64 `gorm:"column:advance_paid" json:"advancePaid,omitempty"`
	IsAdvancePaid   bool    `gorm:"column:is_advance_paid;default:false" json:"isAdvancePaid"`
	TransactionID   string  `gorm:"column:transaction_id;size:100" json:"transactionId,omitempty"`
	DiscountPercent float64 `gorm:"column:discount_percent" json:"discountPercent,omitempty"`
	RefBy           string  `gorm:"size:255" json:"refBy,omitempty"`

	VehicleDetails VehicleDetails `gorm:"embedded;embeddedPrefix:vehicle_" json:"vehicleDetails"`

	Status             string     `gorm:"size:20;default:Confirmed" json:"status"`
	CancellationReason string     `gorm:"size:512" json:"cancellationReason,omitempty"`
	CancelledBy        string     `gorm:"size:255" json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	IsNoShow           bool       `gorm:"column:is_no_show;default:false" json:"isNoShow"`

	VIP            bool   `gorm:"column:vip;default:false" json:"vip"`
	IsForeignGuest bool   `gorm:"column:is_foreign_guest;default:false" json:"isForeignGuest"`
	CreatedBy      string `gorm:"size:255" json:"createdBy,omitempty"`

	// Conversion overlay, populated at check-in.
	LinkedCheckInID *uint      `gorm:"column:linked_check_in_id;index" json:"linkedCheckInId,omitempty"`
	BookingDate     *time.Time `json:"bookingDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Category     *RoomCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	RoomAssigned *Room         `gorm:"foreignKey:RoomAssignedID" json:"roomAssigned,omitempty"`
}

// HoldsRoom reports whether this reservation currently holds dates against
// its assigned room.
func (r *Reservation) HoldsRoom() bool {
	return r.RoomAssignedID != nil &&
		r.Status != ReservationStatusCancelled &&
		r.CheckInDate != nil && r.CheckOutDate != nil
}

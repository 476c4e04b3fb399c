package models

import "time"

// Value snapshots embedded in Booking (and partially in Guest). They are
// copied at creation time, not shared with the Guest aggregate, so later
// divergence between a booking snapshot and the guest profile is expected.
//
// Each struct enumerates its own mergeable fields via Merge: a zero-value
// field in the patch leaves the stored value alone, everything else
// overwrites. Unknown keys can never sneak in because the patch is typed.

type GuestDetails struct {
	Salutation string `gorm:"size:20" json:"salutation,omitempty"`
	Name       string `gorm:"size:255" json:"name,omitempty"`
	Age        int    `json:"age,omitempty"`
	Gender     string `gorm:"size:20" json:"gender,omitempty"`
	PhotoURL   string `gorm:"size:512" json:"photoUrl,omitempty"`
}

func (d *GuestDetails) Merge(patch GuestDetails) {
	if patch.Salutation != "" {
		d.Salutation = patch.Salutation
	}
	if patch.Name != "" {
		d.Name = patch.Name
	}
	if patch.Age != 0 {
		d.Age = patch.Age
	}
	if patch.Gender != "" {
		d.Gender = patch.Gender
	}
	if patch.PhotoURL != "" {
		d.PhotoURL = patch.PhotoURL
	}
}

type ContactDetails struct {
	Phone   string `gorm:"size:30;index" json:"phone,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Address string `gorm:"size:512" json:"address,omitempty"`
	City    string `gorm:"size:100" json:"city,omitempty"`
	State   string `gorm:"size:100" json:"state,omitempty"`
	Country string `gorm:"size:100" json:"country,omitempty"`
	PinCode string `gorm:"size:20" json:"pinCode,omitempty"`
}

func (d *ContactDetails) Merge(patch ContactDetails) {
	if patch.Phone != "" {
		d.Phone = patch.Phone
	}
	if patch.Email != "" {
		d.Email = patch.Email
	}
	if patch.Address != "" {
		d.Address = patch.Address
	}
	if patch.City != "" {
		d.City = patch.City
	}
	if patch.State != "" {
		d.State = patch.State
	}
	if patch.Country != "" {
		d.Country = patch.Country
	}
	if patch.PinCode != "" {
		d.PinCode = patch.PinCode
	}
}

type IdentityDetails struct {
	IDType       string `gorm:"size:30" json:"idType,omitempty"`
	IDNumber     string `gorm:"size:100" json:"idNumber,omitempty"`
	IDPhotoFront string `gorm:"size:512" json:"idPhotoFront,omitempty"`
	IDPhotoBack  string `gorm:"size:512" json:"idPhotoBack,omitempty"`
}

func (d *IdentityDetails) Merge(patch IdentityDetails) {
	if patch.IDType != "" {
		d.IDType = patch.IDType
	}
	if patch.IDNumber != "" {
		d.IDNumber = patch.IDNumber
	}
	if patch.IDPhotoFront != "" {
		d.IDPhotoFront = patch.IDPhotoFront
	}
	if patch.IDPhotoBack != "" {
		d.IDPhotoBack = patch.IDPhotoBack
	}
}

type StayDetails struct {
	CheckIn            *time.Time `json:"checkIn,omitempty"`
	CheckOut           *time.Time `json:"checkOut,omitempty"`
	ArrivalFrom        string     `gorm:"size:255" json:"arrivalFrom,omitempty"`
	BookingType        string     `gorm:"size:30" json:"bookingType,omitempty"`
	PurposeOfVisit     string     `gorm:"size:255" json:"purposeOfVisit,omitempty"`
	Remarks            string     `gorm:"size:512" json:"remarks,omitempty"`
	Adults             int        `json:"adults,omitempty"`
	Children           int        `json:"children,omitempty"`
	ActualCheckInTime  *time.Time `json:"actualCheckInTime,omitempty"`
	ActualCheckOutTime *time.Time `json:"actualCheckOutTime,omitempty"`
}

func (d *StayDetails) Merge(patch StayDetails) {
	if patch.CheckIn != nil {
		d.CheckIn = patch.CheckIn
	}
	if patch.CheckOut != nil {
		d.CheckOut = patch.CheckOut
	}
	if patch.ArrivalFrom != "" {
		d.ArrivalFrom = patch.ArrivalFrom
	}
	if patch.BookingType != "" {
		d.BookingType = patch.BookingType
	}
	if patch.PurposeOfVisit != "" {
		d.PurposeOfVisit = patch.PurposeOfVisit
	}
	if patch.Remarks != "" {
		d.Remarks = patch.Remarks
	}
	if patch.Adults != 0 {
		d.Adults = patch.Adults
	}
	if patch.Children != 0 {
		d.Children = patch.Children
	}
	if patch.ActualCheckInTime != nil {
		d.ActualCheckInTime = patch.ActualCheckInTime
	}
	if patch.ActualCheckOutTime != nil {
		d.ActualCheckOutTime = patch.ActualCheckOutTime
	}
}

type PaymentDetails struct {
	TotalAmount     float64 `json:"totalAmount,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	AdvancePaid     float64 `json:"advancePaid,omitempty"`
	PaymentMode     string  `gorm:"size:30" json:"paymentMode,omitempty"`
	BillingName     string  `gorm:"size:255" json:"billingName,omitempty"`
	BillingAddress  string  `gorm:"size:512" json:"billingAddress,omitempty"`
	GSTNumber       string  `gorm:"size:50" json:"gstNumber,omitempty"`
}

func (d *PaymentDetails) Merge(patch PaymentDetails) {
	if patch.TotalAmount != 0 {
		d.TotalAmount = patch.TotalAmount
	}
	if patch.DiscountPercent != 0 {
		d.DiscountPercent = patch.DiscountPercent
	}
	if patch.AdvancePaid != 0 {
		d.AdvancePaid = patch.AdvancePaid
	}
	if patch.PaymentMode != "" {
		d.PaymentMode = patch.PaymentMode
	}
	if patch.BillingName != "" {
		d.BillingName = patch.BillingName
	}
	if patch.BillingAddress != "" {
		d.BillingAddress = patch.BillingAddress
	}
	if patch.GSTNumber != "" {
		d.GSTNumber = patch.GSTNumber
	}
}

type VehicleDetails struct {
	VehicleNumber string `gorm:"size:30" json:"vehicleNumber,omitempty"`
	VehicleType   string `gorm:"size:30" json:"vehicleType,omitempty"`
	VehicleModel  string `gorm:"size:100" json:"vehicleModel,omitempty"`
	DriverName    string `gorm:"size:255" json:"driverName,omitempty"`
	DriverMobile  string `gorm:"size:30" json:"driverMobile,omitempty"`
}

func (d *VehicleDetails) Merge(patch VehicleDetails) {
	if patch.VehicleNumber != "" {
		d.VehicleNumber = patch.VehicleNumber
	}
	if patch.VehicleType != "" {
		d.VehicleType = patch.VehicleType
	}
	if patch.VehicleModel != "" {
		d.VehicleModel = patch.VehicleModel
	}
	if patch.DriverName != "" {
		d.DriverName = patch.DriverName
	}
	if patch.DriverMobile != "" {
		d.DriverMobile = patch.DriverMobile
	}
}

package services

import (
	"errors"
	"log"
	"time"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService manages active stays: walk-in bookings, reservation
// conversions, extensions, checkout and deletion. Every multi-entity
// mutation (booking row, room status, reservation overlay) runs in one
// transaction; guest upserts happen after commit and are best-effort.
type BookingService struct {
	DB     *gorm.DB
	Rooms  *RoomService
	Guests *GuestService
	Codes  *CodeService
}

func NewBookingService(db *gorm.DB, rooms *RoomService, guests *GuestService, codes *CodeService) *BookingService {
	return &BookingService{DB: db, Rooms: rooms, Guests: guests, Codes: codes}
}

// ---------------------------
// Create (walk-in / conversion)
// ---------------------------

// BookingItem is one category+count request, optionally pinned to a
// specific room or converting an existing reservation.
type BookingItem struct {
	CategoryID    uint  `json:"categoryId"`
	Count         int   `json:"count"`
	ReservationID *uint `json:"reservationId,omitempty"`
	RoomAssigned  *uint `json:"roomAssigned,omitempty"`

	GuestDetails    models.GuestDetails    `json:"guestDetails"`
	ContactDetails  models.ContactDetails  `json:"contactDetails"`
	IdentityDetails models.IdentityDetails `json:"identityDetails"`
	StayDetails     models.StayDetails     `json:"bookingInfo"`
	PaymentDetails  models.PaymentDetails  `json:"paymentDetails"`
	VehicleDetails  models.VehicleDetails  `json:"vehicleDetails"`

	RoomRate       *float64 `json:"roomRate,omitempty"`
	VIP            bool     `json:"vip"`
	IsForeignGuest bool     `json:"isForeignGuest"`
}

// BookingItemResult reports the outcome for one batch item. Earlier items
// stay committed when a later one fails; callers get the full picture
// instead of a silent partial apply.
type BookingItemResult struct {
	Bookings []models.Booking `json:"bookings"`
	Error    string           `json:"error,omitempty"`
}

// BookRooms processes items sequentially. The first failing item aborts the
// remaining ones; its error is returned alongside the per-item results.
func (s *BookingService) BookRooms(items []BookingItem) ([]BookingItemResult, error) {
	if len(items) == 0 {
		return nil, apperror.New(apperror.KindValidation, "no booking items provided")
	}

	results := make([]BookingItemResult, 0, len(items))
	for _, item := range items {
		bookings, err := s.bookItem(item)
		if err != nil {
			results = append(results, BookingItemResult{Error: err.Error()})
			return results, err
		}
		results = append(results, BookingItemResult{Bookings: bookings})
	}
	return results, nil
}

func (s *BookingService) bookItem(item BookingItem) ([]models.Booking, error) {
	if item.CategoryID == 0 {
		return nil, apperror.New(apperror.KindValidation, "categoryId is required")
	}
	if item.Count <= 0 {
		item.Count = 1
	}

	var created []models.Booking
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		created = nil
		txErr := s.DB.Transaction(func(tx *gorm.DB) error {
			return s.bookItemTx(tx, item, &created)
		})
		if txErr == nil {
			lastErr = nil
			break
		}
		// A duplicate key here means a concurrent creation won the
		// identifier; remint and retry the whole item.
		if isDuplicateKey(txErr) {
			log.Printf("booking identifier collision (attempt %d) - retrying", attempt+1)
			lastErr = txErr
			continue
		}
		return nil, txErr
	}
	if lastErr != nil {
		return nil, apperror.Wrap(lastErr, apperror.KindConflict,
			"could not allocate unique booking identifiers")
	}

	for i := range created {
		s.upsertGuest(&created[i])
	}
	return created, nil
}

func (s *BookingService) bookItemTx(tx *gorm.DB, item BookingItem, out *[]models.Booking) error {
	var category models.RoomCategory
	if err := tx.First(&category, item.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "category not found")
		}
		return err
	}

	// Resolve target rooms: a pre-assigned room (typically from a
	// reservation) must be bookable; otherwise first-fit from the category.
	var rooms []models.Room
	if item.RoomAssigned != nil {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, *item.RoomAssigned).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "assigned room not found")
			}
			return err
		}
		if room.Status != models.RoomStatusAvailable && room.Status != models.RoomStatusReserved {
			return apperror.Newf(apperror.KindRoomUnavailable,
				"assigned room (%s) is not available", room.RoomNumber)
		}
		rooms = []models.Room{room}
	} else {
		found, err := s.Rooms.FindAvailableRooms(tx, item.CategoryID, item.Count)
		if err != nil {
			return err
		}
		rooms = found
	}

	var reservation *models.Reservation
	if item.ReservationID != nil {
		var r models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&r, *item.ReservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "invalid reservation id")
			}
			return err
		}
		if r.LinkedCheckInID != nil {
			return apperror.Newf(apperror.KindConflict,
				"reservation %s was already converted", r.ReservationID)
		}
		if len(rooms) > 1 {
			// One reservation carries one grc/ref pair; it cannot back
			// multiple bookings.
			return apperror.New(apperror.KindValidation,
				"a reservation conversion books exactly one room")
		}
		reservation = &r
	}

	now := time.Now().UTC()
	for _, room := range rooms {
		var grcNo, bookingRef string
		if reservation != nil {
			grcNo = reservation.GRCNo
			bookingRef = reservation.BookingRefNo
		} else {
			var err error
			if grcNo, err = s.Codes.GenerateGRC(tx); err != nil {
				return err
			}
			if bookingRef, err = s.Codes.GenerateBookingRef(); err != nil {
				return err
			}
		}

		rate := room.Price
		if item.RoomRate != nil {
			rate = *item.RoomRate
		}

		booking := models.Booking{
			GRCNo:           grcNo,
			BookingRefNo:    bookingRef,
			BTimestamp:      now.Unix(),
			CategoryID:      item.CategoryID,
			RoomNumber:      room.RoomNumber,
			RoomRate:        rate,
			NumberOfRooms:   1,
			IsActive:        true,
			Status:          models.BookingStatusBooked,
			GuestDetails:    item.GuestDetails,
			ContactDetails:  item.ContactDetails,
			IdentityDetails: item.IdentityDetails,
			StayDetails:     item.StayDetails,
			PaymentDetails:  item.PaymentDetails,
			VehicleDetails:  item.VehicleDetails,
			VIP:             item.VIP,
			IsForeignGuest:  item.IsForeignGuest,
		}
		if reservation != nil {
			booking.ReservationRecordID = &reservation.ID
			// Conversion inherits the reserved stay window unless the
			// check-in overrides it.
			if booking.StayDetails.CheckIn == nil {
				booking.StayDetails.CheckIn = reservation.CheckInDate
			}
			if booking.StayDetails.CheckOut == nil {
				booking.StayDetails.CheckOut = reservation.CheckOutDate
			}
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		if reservation != nil {
			if err := tx.Model(reservation).Updates(map[string]interface{}{
				"linked_check_in_id": booking.ID,
				"status":             models.ReservationStatusConfirmed,
				"booking_date":       now,
				"b_timestamp":        now.Unix(),
			}).Error; err != nil {
				return err
			}
		}

		if err := s.Rooms.BookRoom(tx, room.ID, booking.StayDetails.CheckOut); err != nil {
			return err
		}

		*out = append(*out, booking)
	}
	return nil
}

func (s *BookingService) upsertGuest(b *models.Booking) {
	err := s.Guests.UpsertGuestOnStay(
		GuestIdentity{
			Phone:        b.ContactDetails.Phone,
			GRCNo:        b.GRCNo,
			BookingRefNo: b.BookingRefNo,
		},
		b.GuestDetails, b.ContactDetails, b.IdentityDetails,
	)
	if err != nil {
		log.Printf("warning: guest upsert failed for booking %s: %v", b.GRCNo, err)
	}
}

// ---------------------------
// Extend
// ---------------------------

type ExtendBookingInput struct {
	ExtendedCheckOut time.Time `json:"extendedCheckOut" binding:"required"`
	Reason           string    `json:"reason"`
	AdditionalAmount float64   `json:"additionalAmount"`
	PaymentMode      string    `json:"paymentMode"`
	ApprovedBy       string    `json:"approvedBy"`
}

// Extend appends an immutable extension event and moves the checkout date.
// Prior history entries are never rewritten.
func (s *BookingService) Extend(id uint, in ExtendBookingInput) (*models.Booking, error) {
	var out models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "booking not found")
			}
			return err
		}
		if !booking.IsActive {
			return apperror.New(apperror.KindInactiveState, "cannot extend an inactive booking")
		}

		history, err := models.AppendExtension(booking.ExtensionHistory, models.ExtensionEvent{
			OriginalCheckIn:  booking.StayDetails.CheckIn,
			OriginalCheckOut: booking.StayDetails.CheckOut,
			ExtendedCheckOut: in.ExtendedCheckOut,
			ExtendedOn:       time.Now().UTC(),
			Reason:           in.Reason,
			AdditionalAmount: in.AdditionalAmount,
			PaymentMode:      in.PaymentMode,
			ApprovedBy:       in.ApprovedBy,
		})
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"extension_history": history,
			"stay_check_out":    in.ExtendedCheckOut,
		}
		if in.AdditionalAmount != 0 {
			updates["payment_total_amount"] = booking.PaymentDetails.TotalAmount + in.AdditionalAmount
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------
// Checkout / delete
// ---------------------------

// Checkout closes the stay: status Checked Out, isActive off, actual
// checkout stamped, room released.
func (s *BookingService) Checkout(id uint) (*models.Booking, error) {
	var out models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "booking not found")
			}
			return err
		}
		if !booking.IsActive {
			return apperror.New(apperror.KindInactiveState, "cannot checkout an inactive booking")
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":                     models.BookingStatusCheckedOut,
			"is_active":                  false,
			"stay_actual_check_out_time": now,
		}).Error; err != nil {
			return err
		}

		if err := s.Rooms.ReleaseRoomByNumber(tx, booking.RoomNumber); err != nil {
			return err
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SoftDelete marks the booking inactive without touching its status and
// releases the room.
func (s *BookingService) SoftDelete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "booking not found")
			}
			return err
		}
		if !booking.IsActive {
			return apperror.New(apperror.KindInactiveState, "booking already inactive")
		}

		if err := tx.Model(&booking).Update("is_active", false).Error; err != nil {
			return err
		}
		return s.Rooms.ReleaseRoomByNumber(tx, booking.RoomNumber)
	})
}

// HardDelete removes the record permanently. Room state is deliberately NOT
// touched: callers that still hold the room must release it separately.
func (s *BookingService) HardDelete(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.New(apperror.KindNotFound, "booking not found")
	}
	return nil
}

// ---------------------------
// Update
// ---------------------------

// UpdateBookingInput patches a booking. Nested snapshots merge per field;
// nil sub-structs leave the stored values untouched. IsActive, the
// identifiers and the creation timestamp are not updatable through this
// path.
type UpdateBookingInput struct {
	GuestDetails    *models.GuestDetails    `json:"guestDetails"`
	ContactDetails  *models.ContactDetails  `json:"contactDetails"`
	IdentityDetails *models.IdentityDetails `json:"identityDetails"`
	StayDetails     *models.StayDetails     `json:"bookingInfo"`
	PaymentDetails  *models.PaymentDetails  `json:"paymentDetails"`
	VehicleDetails  *models.VehicleDetails  `json:"vehicleDetails"`

	RoomNumber     *string `json:"roomNumber"`
	NumberOfRooms  *int    `json:"numberOfRooms"`
	Status         *string `json:"status"`
	VIP            *bool   `json:"vip"`
	IsForeignGuest *bool   `json:"isForeignGuest"`

	// Extension shortcut carried from the legacy update path; delegates to
	// the same append-only history logic as Extend.
	ExtendedCheckOut *time.Time `json:"extendedCheckOut"`
	Reason           string     `json:"reason"`
	AdditionalAmount float64    `json:"additionalAmount"`
	PaymentMode      string     `json:"paymentMode"`
	ApprovedBy       string     `json:"approvedBy"`

	// Restricted: any non-nil value here is rejected.
	IsActive     *bool      `json:"isActive"`
	GRCNo        *string    `json:"grcNo"`
	BookingRefNo *string    `json:"bookingRefNo"`
	CreatedAt    *time.Time `json:"createdAt"`
}

func (s *BookingService) Update(id uint, patch UpdateBookingInput) (*models.Booking, error) {
	if patch.IsActive != nil || patch.GRCNo != nil || patch.BookingRefNo != nil || patch.CreatedAt != nil {
		return nil, apperror.New(apperror.KindValidation,
			"isActive, grcNo, bookingRefNo and createdAt cannot be modified")
	}

	var out models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "booking not found")
			}
			return err
		}

		if patch.GuestDetails != nil {
			booking.GuestDetails.Merge(*patch.GuestDetails)
		}
		if patch.ContactDetails != nil {
			booking.ContactDetails.Merge(*patch.ContactDetails)
		}
		if patch.IdentityDetails != nil {
			booking.IdentityDetails.Merge(*patch.IdentityDetails)
		}
		if patch.StayDetails != nil {
			booking.StayDetails.Merge(*patch.StayDetails)
		}
		if patch.PaymentDetails != nil {
			booking.PaymentDetails.Merge(*patch.PaymentDetails)
		}
		if patch.VehicleDetails != nil {
			booking.VehicleDetails.Merge(*patch.VehicleDetails)
		}

		if patch.RoomNumber != nil {
			booking.RoomNumber = *patch.RoomNumber
		}
		if patch.NumberOfRooms != nil {
			booking.NumberOfRooms = *patch.NumberOfRooms
		}
		if patch.Status != nil {
			booking.Status = *patch.Status
		}
		if patch.VIP != nil {
			booking.VIP = *patch.VIP
		}
		if patch.IsForeignGuest != nil {
			booking.IsForeignGuest = *patch.IsForeignGuest
		}

		if patch.ExtendedCheckOut != nil {
			history, err := models.AppendExtension(booking.ExtensionHistory, models.ExtensionEvent{
				OriginalCheckIn:  booking.StayDetails.CheckIn,
				OriginalCheckOut: booking.StayDetails.CheckOut,
				ExtendedCheckOut: *patch.ExtendedCheckOut,
				ExtendedOn:       time.Now().UTC(),
				Reason:           patch.Reason,
				AdditionalAmount: patch.AdditionalAmount,
				PaymentMode:      patch.PaymentMode,
				ApprovedBy:       patch.ApprovedBy,
			})
			if err != nil {
				return err
			}
			booking.ExtensionHistory = history
			booking.StayDetails.CheckOut = patch.ExtendedCheckOut
			if patch.AdditionalAmount != 0 {
				booking.PaymentDetails.TotalAmount += patch.AdditionalAmount
			}
		}

		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------
// Queries
// ---------------------------

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Category").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// GetByGRC prefers the active booking for a GRC and falls back to the most
// recent historical one.
func (s *BookingService) GetByGRC(grcNo string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Category").
		Where("grc_no = ?", grcNo).
		Order("is_active DESC, created_at DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// ListBookingsQuery filters and paginates the booking list. Active-only by
// default; All=true includes closed stays.
type ListBookingsQuery struct {
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
	Search       string
	Status       string
	CategoryID   uint
	GRCNo        string
	BookingRefNo string
	All          bool
}

func (s *BookingService) List(q ListBookingsQuery) ([]models.Booking, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	sortBy := q.SortBy
	switch sortBy {
	case "created_at", "updated_at", "grc_no", "room_number", "status":
	default:
		sortBy = "created_at"
	}
	order := sortBy + " DESC"
	if q.SortOrder == "asc" {
		order = sortBy + " ASC"
	}

	db := s.DB.Model(&models.Booking{})
	if !q.All {
		db = db.Where("is_active = ?", true)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		db = db.Where(
			"guest_name LIKE ? OR contact_phone LIKE ? OR contact_email LIKE ? OR grc_no LIKE ? OR booking_ref_no LIKE ?",
			like, like, like, like, like)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.CategoryID != 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.GRCNo != "" {
		db = db.Where("grc_no = ?", q.GRCNo)
	}
	if q.BookingRefNo != "" {
		db = db.Where("booking_ref_no = ?", q.BookingRefNo)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := db.Preload("Category").
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&bookings).Error
	return bookings, total, err
}

package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService manages advance holds: create, update, cancel, no-show
// and conversion bookkeeping. Room-state mutations and the reservation write
// always share one transaction; the guest upsert runs after commit and is
// best-effort.
type ReservationService struct {
	DB     *gorm.DB
	Rooms  *RoomService
	Guests *GuestService
	Codes  *CodeService
}

func NewReservationService(db *gorm.DB, rooms *RoomService, guests *GuestService, codes *CodeService) *ReservationService {
	return &ReservationService{DB: db, Rooms: rooms, Guests: guests, Codes: codes}
}

// Create mints the three identifiers, holds the assigned room's dates (when
// a room is pre-assigned) and persists the reservation atomically. A
// duplicate-key collision on any identifier regenerates and retries the
// whole sequence, bounded by maxCodeAttempts.
func (s *ReservationService) Create(input *models.Reservation) (*models.Reservation, error) {
	if strings.TrimSpace(input.GuestName) == "" {
		return nil, apperror.New(apperror.KindValidation, "guestName is required")
	}
	if input.RoomAssignedID != nil && (input.CheckInDate == nil || input.CheckOutDate == nil) {
		return nil, apperror.New(apperror.KindValidation, "checkInDate and checkOutDate are required when a room is assigned")
	}
	if input.Status == "" {
		input.Status = models.ReservationStatusConfirmed
	}

	var created models.Reservation
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		reservationID, err := s.Codes.GenerateReservationID()
		if err != nil {
			return nil, err
		}
		bookingRef, err := s.Codes.GenerateBookingRef()
		if err != nil {
			return nil, err
		}

		txErr := s.DB.Transaction(func(tx *gorm.DB) error {
			grcNo, err := s.Codes.GenerateGRC(tx)
			if err != nil {
				return err
			}

			reservation := *input
			reservation.ID = 0
			reservation.ReservationID = reservationID
			reservation.BookingRefNo = bookingRef
			reservation.GRCNo = grcNo
			reservation.RTimestamp = time.Now().Unix()

			if reservation.RoomAssignedID != nil {
				if err := s.Rooms.ReserveRoom(tx, *reservation.RoomAssignedID,
					*reservation.CheckInDate, *reservation.CheckOutDate); err != nil {
					return err
				}
			}

			if err := tx.Create(&reservation).Error; err != nil {
				return err
			}
			created = reservation
			return nil
		})
		if txErr == nil {
			lastErr = nil
			break
		}
		if isDuplicateKey(txErr) {
			log.Printf("reservation identifier collision (attempt %d) - retrying", attempt+1)
			lastErr = txErr
			continue
		}
		return nil, txErr
	}
	if lastErr != nil {
		return nil, apperror.Wrap(lastErr, apperror.KindConflict,
			"could not allocate unique reservation identifiers")
	}

	// Best-effort: a failed guest upsert never unwinds the reservation.
	s.upsertGuest(&created)

	return &created, nil
}

func (s *ReservationService) upsertGuest(r *models.Reservation) {
	phone := r.PhoneNo
	if phone == "" {
		phone = r.MobileNo
	}
	err := s.Guests.UpsertGuestOnStay(
		GuestIdentity{Phone: phone, GRCNo: r.GRCNo, BookingRefNo: r.BookingRefNo},
		models.GuestDetails{Salutation: r.Salutation, Name: r.GuestName},
		models.ContactDetails{Phone: phone, Email: r.Email, Address: r.Address, City: r.City},
		models.IdentityDetails{},
	)
	if err != nil {
		log.Printf("warning: guest upsert failed for reservation %s: %v", r.ReservationID, err)
	}
}

// UpdateReservationInput lists the mutable fields. Nil pointers are left
// untouched.
type UpdateReservationInput struct {
	ReservationType   *string    `json:"reservationType"`
	ModeOfReservation *string    `json:"modeOfReservation"`
	CategoryID        *uint      `json:"categoryId"`
	CheckInDate       *time.Time `json:"checkInDate"`
	CheckInTime       *string    `json:"checkInTime"`
	CheckOutDate      *time.Time `json:"checkOutDate"`
	CheckOutTime      *string    `json:"checkOutTime"`
	NoOfRooms         *int       `json:"noOfRooms"`
	NoOfAdults        *int       `json:"noOfAdults"`
	NoOfChildren      *int       `json:"noOfChildren"`
	PlanPackage       *string    `json:"planPackage"`
	Rate              *float64   `json:"rate"`
	ArrivalFrom       *string    `json:"arrivalFrom"`
	PurposeOfVisit    *string    `json:"purposeOfVisit"`
	SpecialRequests   *string    `json:"specialRequests"`
	Remarks           *string    `json:"remarks"`
	Salutation        *string    `json:"salutation"`
	GuestName         *string    `json:"guestName"`
	Nationality       *string    `json:"nationality"`
	City              *string    `json:"city"`
	Address           *string    `json:"address"`
	PhoneNo           *string    `json:"phoneNo"`
	MobileNo          *string    `json:"mobileNo"`
	Email             *string    `json:"email"`
	CompanyName       *string    `json:"companyName"`
	PaymentMode       *string    `json:"paymentMode"`
	AdvancePaid       *float64   `json:"advancePaid"`
	IsAdvancePaid     *bool      `json:"isAdvancePaid"`
	DiscountPercent   *float64   `json:"discountPercent"`
	Status            *string    `json:"status"`
	VIP               *bool      `json:"vip"`
	IsForeignGuest    *bool      `json:"isForeignGuest"`
}

// Update applies a partial update. A status transition to Cancelled releases
// the room's held dates for the reservation's ORIGINAL stay window, not the
// patched one.
func (s *ReservationService) Update(id uint, patch UpdateReservationInput) (*models.Reservation, error) {
	var updated models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "reservation not found")
			}
			return err
		}

		cancelling := patch.Status != nil &&
			*patch.Status == models.ReservationStatusCancelled &&
			reservation.Status != models.ReservationStatusCancelled

		// Release before the stay window is overwritten by the patch.
		if cancelling && reservation.HoldsRoom() {
			if err := s.Rooms.ReleaseRoom(tx, *reservation.RoomAssignedID,
				reservation.CheckInDate, reservation.CheckOutDate); err != nil {
				return err
			}
		}

		applyReservationPatch(&reservation, patch)
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func applyReservationPatch(r *models.Reservation, p UpdateReservationInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&r.ReservationType, p.ReservationType)
	setString(&r.ModeOfReservation, p.ModeOfReservation)
	if p.CategoryID != nil {
		r.CategoryID = p.CategoryID
	}
	if p.CheckInDate != nil {
		r.CheckInDate = p.CheckInDate
	}
	setString(&r.CheckInTime, p.CheckInTime)
	if p.CheckOutDate != nil {
		r.CheckOutDate = p.CheckOutDate
	}
	setString(&r.CheckOutTime, p.CheckOutTime)
	if p.NoOfRooms != nil {
		r.NoOfRooms = *p.NoOfRooms
	}
	if p.NoOfAdults != nil {
		r.NoOfAdults = *p.NoOfAdults
	}
	if p.NoOfChildren != nil {
		r.NoOfChildren = *p.NoOfChildren
	}
	setString(&r.PlanPackage, p.PlanPackage)
	if p.Rate != nil {
		r.Rate = *p.Rate
	}
	setString(&r.ArrivalFrom, p.ArrivalFrom)
	setString(&r.PurposeOfVisit, p.PurposeOfVisit)
	setString(&r.SpecialRequests, p.SpecialRequests)
	setString(&r.Remarks, p.Remarks)
	setString(&r.Salutation, p.Salutation)
	setString(&r.GuestName, p.GuestName)
	setString(&r.Nationality, p.Nationality)
	setString(&r.City, p.City)
	setString(&r.Address, p.Address)
	setString(&r.PhoneNo, p.PhoneNo)
	setString(&r.MobileNo, p.MobileNo)
	setString(&r.Email, p.Email)
	setString(&r.CompanyName, p.CompanyName)
	setString(&r.PaymentMode, p.PaymentMode)
	if p.AdvancePaid != nil {
		r.AdvancePaid = *p.AdvancePaid
	}
	if p.IsAdvancePaid != nil {
		r.IsAdvancePaid = *p.IsAdvancePaid
	}
	if p.DiscountPercent != nil {
		r.DiscountPercent = *p.DiscountPercent
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.VIP != nil {
		r.VIP = *p.VIP
	}
	if p.IsForeignGuest != nil {
		r.IsForeignGuest = *p.IsForeignGuest
	}
}

// Cancel forces the reservation closed. It bypasses field validation on
// purpose: a malformed reservation must still be cancellable.
func (s *ReservationService) Cancel(id uint, reason, actor string) (*models.Reservation, error) {
	return s.closeOut(id, reason, actor, false)
}

// MarkNoShow closes the reservation as a no-show. Room dates are released
// exactly as on cancellation.
func (s *ReservationService) MarkNoShow(id uint) (*models.Reservation, error) {
	return s.closeOut(id, "", "", true)
}

func (s *ReservationService) closeOut(id uint, reason, actor string, noShow bool) (*models.Reservation, error) {
	var out models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "reservation not found")
			}
			return err
		}

		if reservation.HoldsRoom() {
			if err := s.Rooms.ReleaseRoom(tx, *reservation.RoomAssignedID,
				reservation.CheckInDate, reservation.CheckOutDate); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":       models.ReservationStatusCancelled,
			"cancelled_at": now,
		}
		if reason != "" {
			updates["cancellation_reason"] = reason
		}
		if actor != "" {
			updates["cancelled_by"] = actor
		}
		if noShow {
			updates["is_no_show"] = true
		}
		if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkToBooking records the conversion overlay on the reservation. Creating
// the Booking itself is BookingService's job.
func (s *ReservationService) LinkToBooking(id uint, bookingID uint) (*models.Reservation, error) {
	var out models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "reservation not found")
			}
			return err
		}
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "booking not found")
			}
			return err
		}

		now := time.Now().UTC()
		ts := now.Unix()
		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"linked_check_in_id": bookingID,
			"status":             models.ReservationStatusConfirmed,
			"booking_date":       now,
			"b_timestamp":        ts,
		}).Error; err != nil {
			return err
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID loads one reservation with its category and assigned room.
func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Category").Preload("RoomAssigned").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "reservation not found")
		}
		return nil, err
	}
	return &reservation, nil
}

// GetByGRC loads a reservation by its GRC number.
func (s *ReservationService) GetByGRC(grcNo string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Category").Preload("RoomAssigned").
		Where("grc_no = ?", grcNo).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "reservation not found")
		}
		return nil, err
	}
	return &reservation, nil
}

// GetAll lists reservations newest first.
func (s *ReservationService) GetAll() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Preload("Category").Preload("RoomAssigned").
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// Delete hard-deletes a reservation. Refused while the linked booking is
// still active; closing the stay first is the admin's job.
func (s *ReservationService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "reservation not found")
			}
			return err
		}

		if reservation.LinkedCheckInID != nil {
			var active int64
			if err := tx.Model(&models.Booking{}).
				Where("id = ? AND is_active = ?", *reservation.LinkedCheckInID, true).
				Count(&active).Error; err != nil {
				return err
			}
			if active > 0 {
				return apperror.New(apperror.KindConflict,
					fmt.Sprintf("reservation %s is linked to an active booking", reservation.ReservationID))
			}
		}

		return tx.Delete(&models.Reservation{}, id).Error
	})
}

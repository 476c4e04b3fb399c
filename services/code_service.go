package services

import (
	"fmt"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"gorm.io/gorm"
)

// CodeService mints the human-readable identifiers: GRC number, booking
// reference and reservation id.
//
// The pre-check here only keeps the common path fast; the real guarantee is
// the unique index on each column. Creators retry the whole
// mint-then-insert sequence when the insert hits a duplicate key.
type CodeService struct {
	DB *gorm.DB
}

func NewCodeService(db *gorm.DB) *CodeService {
	return &CodeService{DB: db}
}

// GenerateGRC returns a GRC number unused by any booking or reservation.
// GRCs travel between the two tables on conversion, so uniqueness is checked
// across both, not just the table being written.
//
// The cross-table check is a pre-check, not a guarantee: two concurrent
// mints can pick the same candidate and land one row in each table, and the
// per-table unique indexes cannot see that. The 4-digit space plus the
// caller's insert-retry keep the odds negligible; if it ever happens, the
// clash surfaces as a duplicate key when the reservation converts.
func (s *CodeService) GenerateGRC(tx *gorm.DB) (string, error) {
	db := dbOr(tx, s.DB)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := utils.GenerateGRCCandidate()
		if err != nil {
			return "", fmt.Errorf("failed to generate GRC candidate: %w", err)
		}

		var bookings int64
		if err := db.Model(&models.Booking{}).Where("grc_no = ?", candidate).Count(&bookings).Error; err != nil {
			return "", err
		}
		var reservations int64
		if err := db.Model(&models.Reservation{}).Where("grc_no = ?", candidate).Count(&reservations).Error; err != nil {
			return "", err
		}
		if bookings == 0 && reservations == 0 {
			return candidate, nil
		}
	}
	return "", apperror.New(apperror.KindConflict, "could not allocate a unique GRC number")
}

// GenerateBookingRef returns a BRF-<date>-<time>-<random> reference.
// Very low collision probability, not unique by contract; the unique index
// catches the rest.
func (s *CodeService) GenerateBookingRef() (string, error) {
	ref, err := utils.GenerateBookingRef()
	if err != nil {
		return "", fmt.Errorf("failed to generate booking ref: %w", err)
	}
	return ref, nil
}

// GenerateReservationID returns an RSV-<date>-<time>-<random> id.
func (s *CodeService) GenerateReservationID() (string, error) {
	id, err := utils.GenerateReservationID()
	if err != nil {
		return "", fmt.Errorf("failed to generate reservation id: %w", err)
	}
	return id, nil
}

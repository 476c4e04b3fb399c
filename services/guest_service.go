package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuestService owns the deduplicated guest directory. Upserts are invoked
// best-effort by the booking and reservation lifecycles: a failed upsert is
// logged and swallowed, it never rolls back or blocks the stay that
// triggered it.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// GuestIdentity is the dedup key for a stay. Phone wins when present;
// otherwise the grcNo+bookingRefNo pair identifies the stay's guest.
type GuestIdentity struct {
	Phone        string
	GRCNo        string
	BookingRefNo string
}

func (k GuestIdentity) blank() bool {
	return strings.TrimSpace(k.Phone) == "" &&
		(strings.TrimSpace(k.GRCNo) == "" || strings.TrimSpace(k.BookingRefNo) == "")
}

// UpsertGuestOnStay creates or merges the guest profile for one stay. A new
// profile starts with totalVisits=1; a matching profile gets non-empty
// snapshot fields merged over it, the visit counter bumped and lastVisit
// refreshed. A blank identity key logs and no-ops.
func (s *GuestService) UpsertGuestOnStay(key GuestIdentity, gd models.GuestDetails, cd models.ContactDetails, id models.IdentityDetails) error {
	if key.blank() {
		log.Printf("guest upsert skipped: blank identity key")
		return nil
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if strings.TrimSpace(key.Phone) != "" {
			query = query.Where("phone = ?", strings.TrimSpace(key.Phone))
		} else {
			query = query.Where("grc_no = ? AND booking_ref_no = ?", key.GRCNo, key.BookingRefNo)
		}

		now := time.Now().UTC()

		var guest models.Guest
		err := query.First(&guest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			guest = models.Guest{
				GRCNo:           key.GRCNo,
				BookingRefNo:    key.BookingRefNo,
				Phone:           strings.TrimSpace(key.Phone),
				Salutation:      gd.Salutation,
				Name:            gd.Name,
				Age:             gd.Age,
				Gender:          gd.Gender,
				PhotoURL:        gd.PhotoURL,
				ContactDetails:  cd,
				IdentityDetails: id,
				LastVisit:       &now,
				TotalVisits:     1,
			}
			if guest.Phone == "" {
				guest.Phone = strings.TrimSpace(cd.Phone)
			}
			return tx.Create(&guest).Error
		}
		if err != nil {
			return err
		}

		// Merge non-empty fields over the stored snapshot; the counter is
		// bumped exactly once per upsert.
		if gd.Salutation != "" {
			guest.Salutation = gd.Salutation
		}
		if gd.Name != "" {
			guest.Name = gd.Name
		}
		if gd.Age != 0 {
			guest.Age = gd.Age
		}
		if gd.Gender != "" {
			guest.Gender = gd.Gender
		}
		if gd.PhotoURL != "" {
			guest.PhotoURL = gd.PhotoURL
		}
		guest.ContactDetails.Merge(cd)
		guest.IdentityDetails.Merge(id)
		if key.GRCNo != "" {
			guest.GRCNo = key.GRCNo
		}
		if key.BookingRefNo != "" {
			guest.BookingRefNo = key.BookingRefNo
		}
		guest.LastVisit = &now
		guest.TotalVisits++

		return tx.Save(&guest).Error
	})
}

// GetByGRC returns the guest profile recorded under the GRC number.
func (s *GuestService) GetByGRC(grcNo string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.Where("grc_no = ?", grcNo).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "guest not found for this GRC")
		}
		return nil, err
	}
	return &guest, nil
}

// RecordVisit bumps the visit counter and lastVisit without touching the
// rest of the profile.
func (s *GuestService) RecordVisit(key GuestIdentity) (*models.Guest, error) {
	if key.blank() {
		return nil, apperror.New(apperror.KindValidation, "phone or grcNo+bookingRefNo is required")
	}

	var guest models.Guest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if strings.TrimSpace(key.Phone) != "" {
			query = query.Where("phone = ?", strings.TrimSpace(key.Phone))
		} else {
			query = query.Where("grc_no = ? AND booking_ref_no = ?", key.GRCNo, key.BookingRefNo)
		}
		if err := query.First(&guest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "guest not found for provided identity")
			}
			return err
		}

		now := time.Now().UTC()
		guest.LastVisit = &now
		guest.TotalVisits++
		return tx.Save(&guest).Error
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// ListGuestsQuery filters the directory listing.
type ListGuestsQuery struct {
	Name   string
	Email  string
	Phone  string
	IDType string
	Page   int
	Limit  int
}

// List returns a filtered, paginated page of guest profiles plus the total
// matching count.
func (s *GuestService) List(q ListGuestsQuery) ([]models.Guest, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	db := s.DB.Model(&models.Guest{})
	if q.Name != "" {
		db = db.Where("name LIKE ?", "%"+q.Name+"%")
	}
	if q.Email != "" {
		db = db.Where("contact_email LIKE ?", "%"+q.Email+"%")
	}
	if q.Phone != "" {
		db = db.Where("phone LIKE ? OR contact_phone LIKE ?", "%"+q.Phone+"%", "%"+q.Phone+"%")
	}
	if q.IDType != "" {
		db = db.Where("identity_id_type = ?", q.IDType)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var guests []models.Guest
	err := db.Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&guests).Error
	return guests, total, err
}

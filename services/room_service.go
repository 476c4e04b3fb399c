package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomService owns per-room availability state and the reserved-date
// calendar. Status transitions happen only through the reservation and
// booking lifecycles; plain CRUD never flips a room into or out of
// reserved/booked.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// ---------------------------
// Inventory CRUD
// ---------------------------

func (s *RoomService) Create(room *models.Room) error {
	if strings.TrimSpace(room.RoomNumber) == "" {
		return apperror.New(apperror.KindValidation, "roomNumber is required")
	}
	if room.CategoryID == 0 {
		return apperror.New(apperror.KindValidation, "categoryId is required")
	}
	var category models.RoomCategory
	if err := s.DB.First(&category, room.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "category not found")
		}
		return err
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if room.ReservedDates == nil {
		room.ReservedDates = utils.EncodeDateSet(nil)
	}
	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKey(err) {
			return apperror.Newf(apperror.KindConflict, "room number %s already exists", room.RoomNumber)
		}
		return err
	}
	return nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("Category").Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Category").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "room not found")
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetByCategory(categoryID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("Category").
		Where("category_id = ?", categoryID).
		Order("room_number ASC").
		Find(&rooms).Error
	return rooms, err
}

// Update patches descriptive fields. Status changes are restricted to the
// available/maintenance pair; reserved and booked belong to the lifecycles.
func (s *RoomService) Update(id uint, patch map[string]interface{}) (*models.Room, error) {
	allowed := map[string]bool{
		"title": true, "price": true, "extra_bed": true,
		"description": true, "out_of_service": true, "category_id": true,
		"images": true,
	}
	updates := map[string]interface{}{}
	for k, v := range patch {
		if allowed[k] {
			updates[k] = v
		}
	}
	if status, ok := patch["status"]; ok {
		st, _ := status.(string)
		if st != models.RoomStatusAvailable && st != models.RoomStatusMaintenance {
			return nil, apperror.New(apperror.KindValidation, "status can only be set to available or maintenance here")
		}
		updates["status"] = st
	}
	if len(updates) == 0 {
		return nil, apperror.New(apperror.KindValidation, "no updatable fields provided")
	}

	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.New(apperror.KindNotFound, "room not found")
	}
	return s.GetByID(id)
}

// Delete refuses to remove a room that an active booking or a live
// reservation still references.
func (s *RoomService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "room not found")
			}
			return err
		}

		var activeBookings int64
		if err := tx.Model(&models.Booking{}).
			Where("room_number = ? AND is_active = ?", room.RoomNumber, true).
			Count(&activeBookings).Error; err != nil {
			return err
		}
		if activeBookings > 0 {
			return apperror.New(apperror.KindConflict, "room has an active booking")
		}

		var liveReservations int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_assigned_id = ? AND status <> ?", room.ID, models.ReservationStatusCancelled).
			Count(&liveReservations).Error; err != nil {
			return err
		}
		if liveReservations > 0 {
			return apperror.New(apperror.KindConflict, "room is assigned to a live reservation")
		}

		return tx.Delete(&models.Room{}, id).Error
	})
}

// ---------------------------
// Inventory state machine
// ---------------------------

// FindAvailableRooms returns up to count available rooms in the category,
// first-fit, rows locked so a concurrent request cannot grab the same
// rooms. Must run inside the caller's transaction.
func (s *RoomService) FindAvailableRooms(tx *gorm.DB, categoryID uint, count int) ([]models.Room, error) {
	db := dbOr(tx, s.DB)
	var rooms []models.Room
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("category_id = ? AND status = ? AND out_of_service = ?", categoryID, models.RoomStatusAvailable, false).
		Limit(count).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	if len(rooms) < count {
		return nil, apperror.Newf(apperror.KindInsufficientInventory,
			"only %d room(s) available in this category", len(rooms))
	}
	return rooms, nil
}

// ReserveRoom appends every date in [checkIn, checkOut) to the room's
// reserved-date calendar. Status flips to reserved only when the hold has
// already started; a future-dated hold leaves the room available for other
// ranges. The calendar, not status, is the authoritative overlap check.
func (s *RoomService) ReserveRoom(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) error {
	db := dbOr(tx, s.DB)

	var room models.Room
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "room not found")
		}
		return err
	}

	stay := utils.StayDates(checkIn, checkOut)
	held, err := utils.DecodeDateSet(room.ReservedDates)
	if err != nil {
		return fmt.Errorf("corrupt reserved_dates for room %d: %w", roomID, err)
	}
	if utils.ContainsAnyDate(held, stay) {
		return apperror.Newf(apperror.KindRoomUnavailable,
			"room %s already holds dates in the requested range", room.RoomNumber)
	}

	status := room.Status
	if !utils.TruncateToDay(checkIn).After(utils.TruncateToDay(time.Now())) {
		status = models.RoomStatusReserved
	}

	return db.Model(&models.Room{}).Where("id = ?", roomID).Updates(map[string]interface{}{
		"reserved_dates": utils.EncodeDateSet(utils.AddDates(held, stay)),
		"status":         status,
	}).Error
}

// BookRoom flips the room to booked with a conditional update, so of two
// concurrent bookings for the same room exactly one wins and the loser sees
// RoomUnavailable.
func (s *RoomService) BookRoom(tx *gorm.DB, roomID uint, bookedTill *time.Time) error {
	db := dbOr(tx, s.DB)

	updates := map[string]interface{}{"status": models.RoomStatusBooked}
	if bookedTill != nil {
		updates["booked_till_date"] = *bookedTill
	}

	res := db.Model(&models.Room{}).
		Where("id = ? AND status IN ?", roomID, []string{models.RoomStatusAvailable, models.RoomStatusReserved}).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var room models.Room
		if err := db.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(apperror.KindNotFound, "room not found")
			}
			return err
		}
		return apperror.Newf(apperror.KindRoomUnavailable,
			"room %s is not available (status: %s)", room.RoomNumber, room.Status)
	}
	return nil
}

// ReleaseRoom sets the room available again. When a date range is supplied,
// exactly those dates are removed from the calendar; dates held by other
// reservations stay.
func (s *RoomService) ReleaseRoom(tx *gorm.DB, roomID uint, checkIn, checkOut *time.Time) error {
	db := dbOr(tx, s.DB)

	var room models.Room
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "room not found")
		}
		return err
	}

	updates := map[string]interface{}{
		"status":           models.RoomStatusAvailable,
		"booked_till_date": nil,
	}
	if checkIn != nil && checkOut != nil {
		held, err := utils.DecodeDateSet(room.ReservedDates)
		if err != nil {
			return fmt.Errorf("corrupt reserved_dates for room %d: %w", roomID, err)
		}
		updates["reserved_dates"] = utils.EncodeDateSet(
			utils.RemoveDates(held, utils.StayDates(*checkIn, *checkOut)))
	}

	return db.Model(&models.Room{}).Where("id = ?", roomID).Updates(updates).Error
}

// ReleaseRoomByNumber releases the room carrying the given room number, if
// any. Used by checkout paths that only know the booking's room number.
func (s *RoomService) ReleaseRoomByNumber(tx *gorm.DB, roomNumber string) error {
	db := dbOr(tx, s.DB)
	return db.Model(&models.Room{}).
		Where("room_number = ?", roomNumber).
		Updates(map[string]interface{}{
			"status":           models.RoomStatusAvailable,
			"booked_till_date": nil,
		}).Error
}

// IsRoomFree reports whether none of the requested dates appear in the
// room's calendar and any booked-till date has passed before check-in.
func (s *RoomService) IsRoomFree(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	room, err := s.GetByID(roomID)
	if err != nil {
		return false, err
	}
	held, err := utils.DecodeDateSet(room.ReservedDates)
	if err != nil {
		return false, fmt.Errorf("corrupt reserved_dates for room %d: %w", roomID, err)
	}
	if utils.ContainsAnyDate(held, utils.StayDates(checkIn, checkOut)) {
		return false, nil
	}
	if room.BookedTillDate != nil && !room.BookedTillDate.Before(utils.TruncateToDay(checkIn)) {
		return false, nil
	}
	return true, nil
}

// AvailableByCategory lists available rooms grouped per category for the
// front desk's room picker.
func (s *RoomService) AvailableByCategory() (map[string][]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Category").
		Where("status = ? AND out_of_service = ?", models.RoomStatusAvailable, false).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.Room)
	for _, room := range rooms {
		name := room.Category.Name
		if name == "" {
			name = "Uncategorized"
		}
		grouped[name] = append(grouped[name], room)
	}
	return grouped, nil
}

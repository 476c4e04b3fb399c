package services

import (
	"testing"
	"time"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationRequiresGuestName(t *testing.T) {
	svc := &ReservationService{}

	_, err := svc.Create(&models.Reservation{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateReservationAssignedRoomNeedsDates(t *testing.T) {
	svc := &ReservationService{}

	roomID := uint(7)
	checkIn := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(&models.Reservation{
		GuestName:      "Priya Sharma",
		RoomAssignedID: &roomID,
		CheckInDate:    &checkIn,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestApplyReservationPatchLeavesNilFieldsAlone(t *testing.T) {
	checkIn := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	r := models.Reservation{
		GuestName:   "Priya Sharma",
		City:        "Jaipur",
		Rate:        2500,
		CheckInDate: &checkIn,
		Status:      models.ReservationStatusConfirmed,
	}

	newRate := 3000.0
	applyReservationPatch(&r, UpdateReservationInput{Rate: &newRate})

	assert.Equal(t, 3000.0, r.Rate)
	assert.Equal(t, "Priya Sharma", r.GuestName)
	assert.Equal(t, "Jaipur", r.City)
	assert.Equal(t, checkIn, *r.CheckInDate)
	assert.Equal(t, models.ReservationStatusConfirmed, r.Status)
}

func TestCancelReleasesExactlyTheOriginalStayWindow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := &ReservationService{DB: db, Rooms: NewRoomService(db)}

	checkIn := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 4, 4, 0, 0, 0, 0, time.UTC)

	// The room also holds 2025-04-10 for another reservation; cancelling
	// this one must leave that date in the calendar.
	held := utils.EncodeDateSet([]string{"2025-04-02", "2025-04-03", "2025-04-10"})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reservation_id", "grc_no", "room_assigned_id",
			"check_in_date", "check_out_date", "status",
		}).AddRow(9, "RSV-20250401-0900-1111", "GRC-1234", 7, checkIn, checkOut,
			models.ReservationStatusConfirmed))
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status", "reserved_dates"}).
			AddRow(7, "101", models.RoomStatusReserved, []byte(held)))
	mock.ExpectExec("UPDATE `rooms` SET").
		WithArgs(nil, jsonDateSet{want: []string{"2025-04-10"}}, models.RoomStatusAvailable,
			sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `reservations` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "grc_no", "status", "is_no_show"}).
			AddRow(9, "RSV-20250401-0900-1111", "GRC-1234", models.ReservationStatusCancelled, false))
	mock.ExpectCommit()

	cancelled, err := svc.Cancel(9, "guest travel plans changed", "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, cancelled.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHoldsRoom(t *testing.T) {
	roomID := uint(7)
	checkIn := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)

	r := models.Reservation{
		RoomAssignedID: &roomID,
		CheckInDate:    &checkIn,
		CheckOutDate:   &checkOut,
		Status:         models.ReservationStatusConfirmed,
	}
	assert.True(t, r.HoldsRoom())

	r.Status = models.ReservationStatusCancelled
	assert.False(t, r.HoldsRoom())

	r.Status = models.ReservationStatusConfirmed
	r.RoomAssignedID = nil
	assert.False(t, r.HoldsRoom())
}

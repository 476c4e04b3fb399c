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

func TestBookRoomWinsWhenRoomAvailable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	mock.ExpectExec("UPDATE `rooms` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	till := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	err := svc.BookRoom(nil, 7, &till)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomLoserSeesRoomUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	// Conditional update misses: the room is no longer available/reserved.
	mock.ExpectExec("UPDATE `rooms` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(7, "101", models.RoomStatusBooked))

	err := svc.BookRoom(nil, 7, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindRoomUnavailable, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "101")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRoomMissingRoomIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	mock.ExpectExec("UPDATE `rooms` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}))

	err := svc.BookRoom(nil, 99, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestReserveRoomRejectsOverlappingDates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	held := utils.EncodeDateSet([]string{"2025-04-02", "2025-04-03"})
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status", "reserved_dates"}).
			AddRow(7, "101", models.RoomStatusAvailable, []byte(held)))

	err := svc.ReserveRoom(nil, 7,
		time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, apperror.KindRoomUnavailable, apperror.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRoomFutureHoldKeepsRoomAvailable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status", "reserved_dates"}).
			AddRow(7, "101", models.RoomStatusAvailable, []byte(utils.EncodeDateSet(nil))))
	mock.ExpectExec("UPDATE `rooms` SET").
		WithArgs(sqlmock.AnyArg(), models.RoomStatusAvailable, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	future := time.Now().AddDate(0, 1, 0)
	err := svc.ReserveRoom(nil, 7, future, future.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func isRoomFreeRows(bookedTill *time.Time, held []string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "category_id", "room_number", "status", "booked_till_date", "reserved_dates"}).
		AddRow(7, 5, "101", models.RoomStatusAvailable, bookedTill, []byte(utils.EncodeDateSet(held)))
}

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "Deluxe")
}

func TestIsRoomFreeWhenCalendarAndBookedTillClear(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	past := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(isRoomFreeRows(&past, nil))
	mock.ExpectQuery("SELECT \\* FROM `room_categories`").
		WillReturnRows(categoryRows())

	free, err := svc.IsRoomFree(7,
		time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsRoomFreeFalseWhenDateHeld(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(isRoomFreeRows(nil, []string{"2025-04-04"}))
	mock.ExpectQuery("SELECT \\* FROM `room_categories`").
		WillReturnRows(categoryRows())

	free, err := svc.IsRoomFree(7,
		time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsRoomFreeFalseWhenBookedTillReachesCheckIn(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	// Booked through the requested check-in day itself.
	till := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(isRoomFreeRows(&till, nil))
	mock.ExpectQuery("SELECT \\* FROM `room_categories`").
		WillReturnRows(categoryRows())

	free, err := svc.IsRoomFree(7,
		time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestFindAvailableRoomsInsufficientInventory(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRoomService(db)

	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_number", "status"}).
			AddRow(1, "101", models.RoomStatusAvailable))

	_, err := svc.FindAvailableRooms(db, 3, 2)
	require.Error(t, err)
	assert.Equal(t, apperror.KindInsufficientInventory, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "only 1 room(s) available")
}

package services

import (
	"regexp"
	"testing"

	"frontdesk-backend/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGRCReturnsUnusedCandidate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCodeService(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	grc, err := svc.GenerateGRC(nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^GRC-\d{4}$`), grc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateGRCSkipsCandidateHeldByReservation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCodeService(db)

	// First candidate collides with a reservation, second is free.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reservations`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	grc, err := svc.GenerateGRC(nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^GRC-\d{4}$`), grc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateGRCGivesUpAfterBoundedAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCodeService(db)

	for i := 0; i < maxCodeAttempts; i++ {
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `bookings`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `reservations`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	}

	_, err := svc.GenerateGRC(nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

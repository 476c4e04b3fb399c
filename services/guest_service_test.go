package services

import (
	"testing"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertGuestBlankIdentityIsNoOp(t *testing.T) {
	// Nil DB: the blank-key guard must short-circuit before any query.
	svc := NewGuestService(nil)

	err := svc.UpsertGuestOnStay(GuestIdentity{},
		models.GuestDetails{Name: "Walk In"}, models.ContactDetails{}, models.IdentityDetails{})
	assert.NoError(t, err)

	// A GRC without a booking ref is still blank.
	err = svc.UpsertGuestOnStay(GuestIdentity{GRCNo: "GRC-1234"},
		models.GuestDetails{}, models.ContactDetails{}, models.IdentityDetails{})
	assert.NoError(t, err)
}

func TestRecordVisitRequiresIdentity(t *testing.T) {
	svc := NewGuestService(nil)

	_, err := svc.RecordVisit(GuestIdentity{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpsertGuestCreatesProfileOnFirstStay(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "name", "total_visits"}))
	mock.ExpectExec("INSERT INTO `guests`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.UpsertGuestOnStay(
		GuestIdentity{Phone: "9000000001", GRCNo: "GRC-1234", BookingRefNo: "BRF-20250101-0900-1111"},
		models.GuestDetails{Name: "Arjun Mehta"},
		models.ContactDetails{Phone: "9000000001", City: "Pune"},
		models.IdentityDetails{},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertGuestMergesExistingProfile(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestService(db)

	// Same phone key: the stored profile is updated in place, never a
	// second row.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "name", "contact_city", "total_visits"}).
			AddRow(4, "9000000001", "Arjun Mehta", "Pune", 2))
	mock.ExpectExec("UPDATE `guests` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.UpsertGuestOnStay(
		GuestIdentity{Phone: "9000000001", GRCNo: "GRC-5678", BookingRefNo: "BRF-20250301-1200-2222"},
		models.GuestDetails{Name: "Arjun K Mehta"},
		models.ContactDetails{Email: "arjun@example.com"},
		models.IdentityDetails{},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordVisitIncrementsCounterByOne(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "name", "total_visits"}).
			AddRow(4, "9000000001", "Arjun Mehta", 2))
	mock.ExpectExec("UPDATE `guests` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	guest, err := svc.RecordVisit(GuestIdentity{Phone: "9000000001"})
	require.NoError(t, err)
	assert.Equal(t, 3, guest.TotalVisits)
	assert.NotNil(t, guest.LastVisit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByGRCNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGuestService(db)

	mock.ExpectQuery("SELECT \\* FROM `guests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "grc_no", "name"}))

	_, err := svc.GetByGRC("GRC-0000")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

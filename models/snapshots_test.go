package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuestDetailsMergeKeepsOmittedFields(t *testing.T) {
	d := GuestDetails{Salutation: "Mr", Name: "Arjun Mehta", Age: 34, Gender: "male"}
	d.Merge(GuestDetails{Name: "Arjun K Mehta"})

	assert.Equal(t, "Arjun K Mehta", d.Name)
	assert.Equal(t, "Mr", d.Salutation)
	assert.Equal(t, 34, d.Age)
	assert.Equal(t, "male", d.Gender)
}

func TestContactDetailsMergeLastWriteWins(t *testing.T) {
	d := ContactDetails{Phone: "9000000001", City: "Pune"}
	d.Merge(ContactDetails{Phone: "9000000002"})
	d.Merge(ContactDetails{Email: "arjun@example.com"})

	assert.Equal(t, "9000000002", d.Phone)
	assert.Equal(t, "arjun@example.com", d.Email)
	assert.Equal(t, "Pune", d.City)
}

func TestStayDetailsMergeNilDatesUntouched(t *testing.T) {
	checkIn := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)
	d := StayDetails{CheckIn: &checkIn, CheckOut: &checkOut, Adults: 2}

	newOut := time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC)
	d.Merge(StayDetails{CheckOut: &newOut})

	assert.Equal(t, checkIn, *d.CheckIn)
	assert.Equal(t, newOut, *d.CheckOut)
	assert.Equal(t, 2, d.Adults)
}

func TestPaymentDetailsMergeZeroAmountIgnored(t *testing.T) {
	d := PaymentDetails{TotalAmount: 4500, PaymentMode: "cash"}
	d.Merge(PaymentDetails{PaymentMode: "card"})

	assert.Equal(t, 4500.0, d.TotalAmount)
	assert.Equal(t, "card", d.PaymentMode)
}

func TestVehicleDetailsMergeEmptyPatchIsNoOp(t *testing.T) {
	d := VehicleDetails{VehicleNumber: "MH12AB1234", DriverName: "Sanjay"}
	d.Merge(VehicleDetails{})

	assert.Equal(t, "MH12AB1234", d.VehicleNumber)
	assert.Equal(t, "Sanjay", d.DriverName)
}

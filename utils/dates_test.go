package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStayDatesExcludesCheckoutDay(t *testing.T) {
	dates := StayDates(day("2025-01-10"), day("2025-01-12"))
	assert.Equal(t, []string{"2025-01-10", "2025-01-11"}, dates)
}

func TestStayDatesSingleNight(t *testing.T) {
	dates := StayDates(day("2025-03-01"), day("2025-03-02"))
	assert.Equal(t, []string{"2025-03-01"}, dates)
}

func TestStayDatesEmptyWhenCheckoutNotAfterCheckin(t *testing.T) {
	assert.Empty(t, StayDates(day("2025-03-02"), day("2025-03-02")))
	assert.Empty(t, StayDates(day("2025-03-02"), day("2025-03-01")))
}

func TestStayDatesIgnoresTimeOfDay(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 3, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, StayDates(checkIn, checkOut))
}

func TestAddDatesDeduplicatesAndSorts(t *testing.T) {
	set := []string{"2025-01-12", "2025-01-10"}
	out := AddDates(set, []string{"2025-01-11", "2025-01-10"})
	assert.Equal(t, []string{"2025-01-10", "2025-01-11", "2025-01-12"}, out)
}

func TestRemoveDatesLeavesOtherHeldDates(t *testing.T) {
	set := []string{"2025-01-10", "2025-01-11", "2025-01-15"}
	out := RemoveDates(set, StayDates(day("2025-01-10"), day("2025-01-12")))
	assert.Equal(t, []string{"2025-01-15"}, out)
}

func TestContainsAnyDate(t *testing.T) {
	set := []string{"2025-01-10", "2025-01-11"}
	assert.True(t, ContainsAnyDate(set, []string{"2025-01-09", "2025-01-11"}))
	assert.False(t, ContainsAnyDate(set, []string{"2025-01-12", "2025-01-13"}))
	assert.False(t, ContainsAnyDate(nil, []string{"2025-01-10"}))
}

func TestDateSetRoundTrip(t *testing.T) {
	raw := EncodeDateSet([]string{"2025-01-10", "2025-01-11"})
	decoded, err := DecodeDateSet(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-10", "2025-01-11"}, decoded)
}

func TestDecodeDateSetEmptyColumn(t *testing.T) {
	decoded, err := DecodeDateSet(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestEncodeDateSetNilBecomesEmptyArray(t *testing.T) {
	assert.JSONEq(t, "[]", string(EncodeDateSet(nil)))
}

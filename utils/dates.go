package utils

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/datatypes"
)

// DayFormat is the canonical layout for calendar dates held against a room.
const DayFormat = "2006-01-02"

// TruncateToDay drops the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StayDates expands [checkIn, checkOut) into day strings. The checkout day
// itself is not held, so a departing guest's room is sellable that night.
func StayDates(checkIn, checkOut time.Time) []string {
	var dates []string
	for d := TruncateToDay(checkIn); d.Before(TruncateToDay(checkOut)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DayFormat))
	}
	return dates
}

// DecodeDateSet parses a reserved-date calendar column. Empty or NULL
// columns decode to an empty set.
func DecodeDateSet(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// EncodeDateSet serializes a date set back into its JSON column form.
func EncodeDateSet(dates []string) datatypes.JSON {
	if dates == nil {
		dates = []string{}
	}
	raw, _ := json.Marshal(dates)
	return datatypes.JSON(raw)
}

// AddDates merges new dates into the set, deduplicated and sorted.
func AddDates(set []string, dates []string) []string {
	seen := make(map[string]bool, len(set)+len(dates))
	out := make([]string, 0, len(set)+len(dates))
	for _, d := range set {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

// RemoveDates removes exactly the given dates from the set. Dates held by
// other reservations are untouched.
func RemoveDates(set []string, dates []string) []string {
	drop := make(map[string]bool, len(dates))
	for _, d := range dates {
		drop[d] = true
	}
	out := make([]string, 0, len(set))
	for _, d := range set {
		if !drop[d] {
			out = append(out, d)
		}
	}
	return out
}

// ContainsAnyDate reports whether any of the requested dates is already held.
func ContainsAnyDate(set []string, dates []string) bool {
	held := make(map[string]bool, len(set))
	for _, d := range set {
		held[d] = true
	}
	for _, d := range dates {
		if held[d] {
			return true
		}
	}
	return false
}

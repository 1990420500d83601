package domain

import "time"

// OffDay is an admin-declared date on which the studio does not operate
type OffDay struct {
	Date      time.Time
	Reason    string
	CreatedAt time.Time
}

// OffDaySet is a set of calendar dates keyed by DateKey
type OffDaySet map[string]struct{}

// NewOffDaySet builds a set from dates
func NewOffDaySet(dates ...time.Time) OffDaySet {
	set := make(OffDaySet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s OffDaySet) Add(date time.Time) {
	s[DateKey(date)] = struct{}{}
}

// Contains is safe on a nil set
func (s OffDaySet) Contains(date time.Time) bool {
	_, ok := s[DateKey(date)]
	return ok
}

// DateKey formats the calendar part of t as YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// DateOnly drops the clock part, keeping the calendar date as seen in t's location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

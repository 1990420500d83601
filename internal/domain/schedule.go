package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSchedule is returned for an inconsistent studio schedule
var ErrInvalidSchedule = errors.New("domain: invalid studio schedule")

// StudioSchedule is the studio day configuration, built once at startup and shared read-only.
type StudioSchedule struct {
	catalog          *SlotCatalog
	closedWeekday    time.Weekday
	hasClosedWeekday bool
	fallbackDuration int
	location         *time.Location
}

// ScheduleOption customizes a StudioSchedule
type ScheduleOption func(*StudioSchedule)

// WithClosedWeekday sets the weekly closed day
func WithClosedWeekday(day time.Weekday) ScheduleOption {
	return func(s *StudioSchedule) {
		s.closedWeekday = day
		s.hasClosedWeekday = true
	}
}

// WithFallbackDuration sets the duration assumed for malformed existing bookings
func WithFallbackDuration(slots int) ScheduleOption {
	return func(s *StudioSchedule) {
		s.fallbackDuration = slots
	}
}

// WithLocation sets the studio timezone used to decide what "today" is
func WithLocation(loc *time.Location) ScheduleOption {
	return func(s *StudioSchedule) {
		s.location = loc
	}
}

// NewStudioSchedule builds a schedule around a catalog
func NewStudioSchedule(catalog *SlotCatalog, opts ...ScheduleOption) (*StudioSchedule, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: empty catalog", ErrInvalidSchedule)
	}

	s := &StudioSchedule{
		catalog:          catalog,
		fallbackDuration: DefaultMalformedDurationSlots,
		location:         time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fallbackDuration < 1 {
		return nil, fmt.Errorf("%w: fallback duration must be at least 1", ErrInvalidSchedule)
	}
	if s.location == nil {
		s.location = time.UTC
	}

	return s, nil
}

func (s *StudioSchedule) Catalog() *SlotCatalog {
	return s.catalog
}

// ClosedWeekday returns the weekly closed day, ok is false if the studio opens every day
func (s *StudioSchedule) ClosedWeekday() (time.Weekday, bool) {
	return s.closedWeekday, s.hasClosedWeekday
}

func (s *StudioSchedule) FallbackDuration() int {
	return s.fallbackDuration
}

func (s *StudioSchedule) Location() *time.Location {
	return s.location
}

// IsWeeklyClosure reports whether the calendar date falls on the weekly closed day
func (s *StudioSchedule) IsWeeklyClosure(date time.Time) bool {
	return s.hasClosedWeekday && DateOnly(date).Weekday() == s.closedWeekday
}

// ParseWeekday parses an English weekday name ("sunday", "Sun"); empty or "none" means no closed day
func ParseWeekday(name string) (time.Weekday, bool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return 0, false, nil
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, true, nil
		}
	}

	return 0, false, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, name)
}

// Package availability decides whether a candidate booking fits a studio day.
// The engine is a pure function over its inputs: it keeps no state and never mutates the snapshot.
package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Engine evaluates candidates against a fixed studio schedule
type Engine struct {
	schedule *domain.StudioSchedule
}

// NewEngine creates an engine for the given schedule
func NewEngine(schedule *domain.StudioSchedule) *Engine {
	return &Engine{schedule: schedule}
}

// Schedule returns the schedule the engine was built with
func (e *Engine) Schedule() *domain.StudioSchedule {
	return e.schedule
}

// Evaluate checks a candidate for the given date against the active bookings of that date.
// Closure is checked first, then the candidate window, then overlap in snapshot order;
// the first conflicting booking is reported.
func (e *Engine) Evaluate(
	date time.Time,
	candidate domain.Candidate,
	active []domain.Occupancy,
	offDays domain.OffDaySet,
) domain.Decision {
	if closed, detail := e.closure(date, offDays); closed {
		return domain.Reject(domain.ReasonStudioClosed, detail)
	}

	catalog := e.schedule.Catalog()

	window, err := catalog.Window(candidate.Start, candidate.Duration)
	if err != nil {
		return domain.Reject(domain.ReasonInvalidSlot, invalidSlotDetail(candidate, catalog, err))
	}

	for _, occ := range active {
		occupied, _, ok := e.resolve(occ)
		if !ok {
			continue
		}

		if window.Intersects(occupied) {
			labels := catalog.Labels(occupied)
			decision := domain.Reject(domain.ReasonOverlap, fmt.Sprintf(
				"requested %s overlaps existing booking at %s",
				joinSlots(catalog.Labels(window)), joinSlots(labels),
			))
			decision.ConflictingBookingID = occ.BookingID
			decision.ConflictingWindow = labels
			return decision
		}
	}

	return domain.Accept()
}

// Malformed returns the snapshot entries that cannot be positioned exactly:
// unknown start slot (skipped) or bad duration (fallback window)
func (e *Engine) Malformed(active []domain.Occupancy) []domain.Occupancy {
	var out []domain.Occupancy
	for _, occ := range active {
		if _, exact, ok := e.resolve(occ); !ok || !exact {
			out = append(out, occ)
		}
	}
	return out
}

// closure reports whether the studio is closed on date
func (e *Engine) closure(date time.Time, offDays domain.OffDaySet) (bool, string) {
	if e.schedule.IsWeeklyClosure(date) {
		return true, fmt.Sprintf("studio is closed on %ss", domain.DateOnly(date).Weekday())
	}
	if offDays.Contains(date) {
		return true, fmt.Sprintf("studio is closed on %s", domain.DateKey(date))
	}
	return false, ""
}

// resolve returns the occupied window of an existing booking.
// exact is false when the fallback duration was used; ok is false when the start slot is unknown.
func (e *Engine) resolve(occ domain.Occupancy) (w domain.Window, exact bool, ok bool) {
	catalog := e.schedule.Catalog()

	start, err := catalog.IndexOf(occ.Start)
	if err != nil {
		return domain.Window{}, false, false
	}

	if occ.Duration >= 1 && occ.Duration <= catalog.Remaining(start) {
		return domain.Window{Start: start, Length: occ.Duration}, true, true
	}

	// Запись, выходящая за закрытие, занимает все слоты до закрытия,
	// запись без длительности занимает fallback, но не дальше закрытия
	remaining := catalog.Remaining(start)
	length := remaining
	if occ.Duration < 1 && e.schedule.FallbackDuration() < remaining {
		length = e.schedule.FallbackDuration()
	}

	return domain.Window{Start: start, Length: length}, false, true
}

func invalidSlotDetail(c domain.Candidate, catalog *domain.SlotCatalog, err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return fmt.Sprintf("%q is not a bookable start time", c.Start)
	case errors.Is(err, domain.ErrInvalidDuration):
		return "duration must be at least one hour"
	case errors.Is(err, domain.ErrWindowOutOfRange):
		i, _ := catalog.IndexOf(c.Start)
		return fmt.Sprintf("%d hours from %s runs past closing, at most %d available", c.Duration, c.Start, catalog.Remaining(i))
	default:
		return err.Error()
	}
}

func joinSlots(slots []domain.Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

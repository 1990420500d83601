package availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SlotState availability of one catalog slot
type SlotState struct {
	Slot domain.Slot

	// Free is false if an active booking occupies the slot
	Free bool

	// MaxDuration longest duration that can start here without overlap or running past closing
	MaxDuration int
}

// Day availability of a whole studio day
type Day struct {
	Date   time.Time
	Closed bool
	Detail string
	Slots  []SlotState
}

// Day computes the per-slot availability of a date. A closed day has no slots.
func (e *Engine) Day(date time.Time, active []domain.Occupancy, offDays domain.OffDaySet) Day {
	day := Day{Date: domain.DateOnly(date), Slots: []SlotState{}}

	if closed, detail := e.closure(date, offDays); closed {
		day.Closed = true
		day.Detail = detail
		return day
	}

	catalog := e.schedule.Catalog()
	taken := make([]bool, catalog.Len())

	for _, occ := range active {
		w, _, ok := e.resolve(occ)
		if !ok {
			continue
		}
		for i := w.Start; i < w.End(); i++ {
			taken[i] = true
		}
	}

	// Идем с конца дня: длина свободного хвоста от слота i
	run := make([]int, len(taken)+1)
	for i := len(taken) - 1; i >= 0; i-- {
		if !taken[i] {
			run[i] = run[i+1] + 1
		}
	}

	for i, slot := range catalog.Slots() {
		day.Slots = append(day.Slots, SlotState{
			Slot:        slot,
			Free:        !taken[i],
			MaxDuration: run[i],
		})
	}

	return day
}

package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays.
// "Сегодня" считается в часовом поясе студии.
func validateDate(date time.Time, now time.Time, loc *time.Location, advanceBookingDays int) error {
	day := domain.DateOnly(date)
	today := domain.DateOnly(now.In(loc))

	if day.Before(today) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

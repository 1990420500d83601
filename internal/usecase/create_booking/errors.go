package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var (
	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrStudioClosed возвращается, когда студия закрыта в указанную дату
	ErrStudioClosed = errors.New("create_booking: studio is closed on this date")

	// ErrInvalidSlot возвращается, когда слот не из каталога или окно выходит за закрытие
	ErrInvalidSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotOverlap возвращается, когда окно пересекается с активным бронированием
	ErrSlotOverlap = errors.New("create_booking: slot overlaps an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectedError отказ движка доступности. Unwrap возвращает сентинел причины.
type RejectedError struct {
	Decision domain.Decision
	reason   error
}

// NewRejectedError оборачивает отказ в ошибку с сентинелом причины
func NewRejectedError(d domain.Decision) *RejectedError {
	reason := ErrInvalidSlot
	switch d.Reason {
	case domain.ReasonStudioClosed:
		reason = ErrStudioClosed
	case domain.ReasonOverlap:
		reason = ErrSlotOverlap
	}
	return &RejectedError{Decision: d, reason: reason}
}

func (e *RejectedError) Error() string {
	if e.Decision.Detail == "" {
		return e.reason.Error()
	}
	return e.reason.Error() + ": " + e.Decision.Detail
}

func (e *RejectedError) Unwrap() error {
	return e.reason
}

package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrCannotCancel возвращается, когда бронирование уже неактивно
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrCannotMarkPaid возвращается, когда бронирование не ожидает оплаты
	ErrCannotMarkPaid = errors.New("bookings: booking is not awaiting payment")

	// ErrCannotConfirm возвращается, когда бронирование нельзя подтвердить (например, не оплачено)
	ErrCannotConfirm = errors.New("bookings: booking cannot be confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)

package offdays

import "errors"

var (
	ErrOffDayNotFound = errors.New("offdays: off-day not found")
	ErrOffDayExists   = errors.New("offdays: off-day already declared")
	ErrInvalidInput   = errors.New("offdays: invalid input data")
	ErrInternal       = errors.New("offdays: internal error")
)

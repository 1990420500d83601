package offday

import "errors"

var (
	// ErrOffDayNotFound возвращается, когда выходной не найден
	ErrOffDayNotFound = errors.New("offday.repository: off-day not found")

	// ErrOffDayExists возвращается при повторном добавлении выходного на ту же дату
	ErrOffDayExists = errors.New("offday.repository: off-day already exists")

	ErrBuildQuery = errors.New("offday.repository: failed to build query")
	ErrExecQuery  = errors.New("offday.repository: failed to execute query")
	ErrScanRow    = errors.New("offday.repository: failed to scan row")
)

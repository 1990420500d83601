package remove_off_day

import (
	"context"
	"time"
)

type OffDayService interface {
	Remove(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

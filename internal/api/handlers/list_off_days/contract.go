package list_off_days

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
)

type OffDayService interface {
	List(ctx context.Context, from, to *time.Time) (*offdays.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

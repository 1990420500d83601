package add_off_day

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
)

type OffDayService interface {
	Add(ctx context.Context, req *offdays.AddRequest) (*offdays.AddResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package mark_paid

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

type BookingService interface {
	MarkPaid(ctx context.Context, id string, req *models.MarkPaidRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package offdays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// OffDayRepository интерфейс репозитория выходных
type OffDayRepository interface {
	Create(ctx context.Context, offDay domain.OffDay) error
	Delete(ctx context.Context, date time.Time) error
	ListRange(ctx context.Context, from, to *time.Time) ([]domain.OffDay, error)
}

// BookingCounter считает активные бронирования на дату
type BookingCounter interface {
	CountActiveOnDate(ctx context.Context, date time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveOccupancies(ctx context.Context, date time.Time) ([]domain.Occupancy, error)
}

// OffDayRepository интерфейс репозитория выходных
type OffDayRepository interface {
	Exists(ctx context.Context, date time.Time) (bool, error)
}

// Engine расчет доступности дня
type Engine interface {
	Schedule() *domain.StudioSchedule
	Day(date time.Time, active []domain.Occupancy, offDays domain.OffDaySet) availability.Day
	Malformed(active []domain.Occupancy) []domain.Occupancy
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

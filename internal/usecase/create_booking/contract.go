package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	GetActiveOccupancies(ctx context.Context, date time.Time) ([]domain.Occupancy, error)
	Create(ctx context.Context, booking *domain.Booking) error
}

// OffDayRepository интерфейс репозитория выходных
type OffDayRepository interface {
	Exists(ctx context.Context, date time.Time) (bool, error)
}

// Engine проверка кандидата на пересечения и закрытые дни
type Engine interface {
	Schedule() *domain.StudioSchedule
	Evaluate(date time.Time, candidate domain.Candidate, active []domain.Occupancy, offDays domain.OffDaySet) domain.Decision
	Malformed(active []domain.Occupancy) []domain.Occupancy
}

// PriceQuoter расчет стоимости
type PriceQuoter interface {
	Quote(pkg string, addons []string, hours int) (*pricing.Quote, error)
}

// DateLocker внутрипроцессная блокировка по ключу даты
type DateLocker interface {
	LockContext(ctx context.Context, key string) (func(), error)
}

// Notifier рассылает уведомление о созданном бронировании
type Notifier interface {
	Notify(event notifications.Event, booking *domain.Booking)
}

// Metrics счетчик решений по заявкам
type Metrics interface {
	IncBookingDecision(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
	return time.Now().UTC()
}

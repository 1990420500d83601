package expire_pending

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListExpiredPending(ctx context.Context, before time.Time) ([]*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, at time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier рассылает уведомления
type Notifier interface {
	Notify(event notifications.Event, booking *domain.Booking)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

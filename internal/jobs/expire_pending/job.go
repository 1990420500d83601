// Package expire_pending переводит неоплаченные бронирования в expired по истечении TTL
package expire_pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
)

const runTimeout = time.Minute

// errSkipped бронирование оплачено или отменено между выборкой и обновлением
var errSkipped = errors.New("expire_pending: booking is no longer pending")

// Job джоба истечения неоплаченных бронирований
type Job struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	notifier    Notifier
	ttl         time.Duration
	now         func() time.Time
	logger      Logger

	cron *cron.Cron
}

// NewJob создает новую джобу
func NewJob(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	ttl time.Duration,
	logger Logger,
) *Job {
	return &Job{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		notifier:    notifier,
		ttl:         ttl,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// Start запускает джобу по cron расписанию (например "@every 5m")
func (j *Job) Start(spec string) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.Error("ExpirePending: run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("expire_pending: invalid schedule %q: %w", spec, err)
	}

	j.cron = c
	c.Start()
	j.logger.Info("ExpirePending: scheduled with spec=%q, ttl=%s", spec, j.ttl)

	return nil
}

// Stop останавливает расписание и ждет текущий запуск
func (j *Job) Stop(ctx context.Context) {
	if j.cron == nil {
		return
	}

	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("ExpirePending: stop timed out")
	}
}

// Run переводит в expired все бронирования, ожидающие оплаты дольше TTL. Возвращает количество.
func (j *Job) Run(ctx context.Context) (int, error) {
	now := j.now()

	// 1. Выбираем кандидатов
	candidates, err := j.bookingRepo.ListExpiredPending(ctx, now.Add(-j.ttl))
	if err != nil {
		return 0, fmt.Errorf("expire_pending: list expired: %w", err)
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	j.logger.Info("ExpirePending: found %d unpaid bookings older than %s", len(candidates), j.ttl)

	expired := 0
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return expired, err
		}

		// 2. Перепроверяем под блокировкой строки и обновляем
		var booking *domain.Booking
		err := j.txManager.Do(ctx, func(txCtx context.Context) error {
			b, err := j.bookingRepo.GetByID(txCtx, candidate.ID)
			if err != nil {
				return err
			}
			if !b.CanBeMarkedPaid() {
				return errSkipped
			}

			if err := j.bookingRepo.UpdateStatus(txCtx, b.ID, domain.StatusExpired, now); err != nil {
				return err
			}

			b.Status = domain.StatusExpired
			b.UpdatedAt = now
			booking = b
			return nil
		})

		switch {
		case err == nil:
			expired++
			// 3. Уведомляем
			j.notifier.Notify(notifications.EventExpired, booking)

		case errors.Is(err, errSkipped), errors.Is(err, bookingRepo.ErrBookingNotFound):
			j.logger.Info("ExpirePending: booking id=%s skipped, no longer pending", candidate.ID)

		default:
			j.logger.Error("ExpirePending: failed to expire booking id=%s: %v", candidate.ID, err)
		}
	}

	j.logger.Info("ExpirePending: expired %d of %d bookings", expired, len(candidates))
	return expired, nil
}

package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	if err := validateID(id); err != nil {
		s.logger.Warn("GetByID: invalid booking id=%q", id)
		return nil, err
	}

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет активное бронирование и освобождает его слоты
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	return s.transition(ctx, "Cancel", id, notifications.EventCancelled,
		func(b *domain.Booking) error {
			if !b.CanBeCancelled() {
				return ErrCannotCancel
			}
			return nil
		},
		func(txCtx context.Context, b *domain.Booking, now time.Time) error {
			if err := s.bookingRepo.Cancel(txCtx, b.ID, reason, now); err != nil {
				return err
			}
			b.Status = domain.StatusCancelled
			b.CancellationReason = ptr.Ptr(reason)
			b.CancelledAt = ptr.Ptr(now)
			return nil
		},
	)
}

// MarkPaid отмечает оплату бронирования, ожидающего оплаты.
// Ссылку на платеж вводит администратор, платежный провайдер не используется.
func (s *Service) MarkPaid(ctx context.Context, id string, req *models.MarkPaidRequest) (*models.BookingResponse, error) {
	reference := strings.TrimSpace(req.PaymentReference)
	if reference == "" {
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}
	if len(reference) > domain.MaxPaymentReferenceLength {
		return nil, fmt.Errorf("%w: payment reference is too long", ErrInvalidInput)
	}

	return s.transition(ctx, "MarkPaid", id, notifications.EventPaid,
		func(b *domain.Booking) error {
			if !b.CanBeMarkedPaid() {
				return ErrCannotMarkPaid
			}
			return nil
		},
		func(txCtx context.Context, b *domain.Booking, now time.Time) error {
			if err := s.bookingRepo.MarkPaid(txCtx, b.ID, reference, now); err != nil {
				return err
			}
			b.PaymentStatus = domain.PaymentPaid
			b.PaymentReference = ptr.Ptr(reference)
			b.PaidAt = ptr.Ptr(now)
			return nil
		},
	)
}

// Confirm подтверждает бронирование (в workflow с оплатой - только оплаченное)
func (s *Service) Confirm(ctx context.Context, id string) (*models.BookingResponse, error) {
	return s.transition(ctx, "Confirm", id, notifications.EventConfirmed,
		func(b *domain.Booking) error {
			if !b.CanBeConfirmed() {
				return ErrCannotConfirm
			}
			return nil
		},
		func(txCtx context.Context, b *domain.Booking, now time.Time) error {
			if err := s.bookingRepo.Confirm(txCtx, b.ID, now); err != nil {
				return err
			}
			b.Status = domain.StatusConfirmed
			b.ConfirmedAt = ptr.Ptr(now)
			return nil
		},
	)
}

// transition читает бронирование под блокировкой, проверяет переход и применяет его в одной транзакции
func (s *Service) transition(
	ctx context.Context,
	op string,
	id string,
	event notifications.Event,
	check func(b *domain.Booking) error,
	apply func(txCtx context.Context, b *domain.Booking, now time.Time) error,
) (*models.BookingResponse, error) {
	s.logger.Info("%s: booking id=%s", op, id)

	if err := validateID(id); err != nil {
		s.logger.Warn("%s: invalid booking id=%q", op, id)
		return nil, err
	}

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.load(txCtx, op, id)
		if err != nil {
			return err
		}

		if err := check(booking); err != nil {
			s.logger.Warn("%s: booking id=%s rejected, status=%s, payment=%s", op, id, booking.Status, booking.PaymentStatus)
			return err
		}

		now := s.timeProvider.Now()
		if err := apply(txCtx, booking, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
		booking.UpdatedAt = now

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%s is now status=%s, payment=%s", op, id, result.Status, result.PaymentStatus)
	s.notifier.Notify(event, result)

	return models.FromDomainBooking(result), nil
}

func (s *Service) load(ctx context.Context, op string, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: booking id must be a UUID", ErrInvalidInput)
	}
	return nil
}

func toDomainFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeInactive: req.IncludeInactive,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return filter, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}
	if req.Limit < 0 || req.Offset < 0 {
		return filter, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}

	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

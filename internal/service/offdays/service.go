package offdays

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	offdayRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/offday"
)

// Service управляет выходными днями студии
type Service struct {
	repo         OffDayRepository
	bookings     BookingCounter
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo OffDayRepository, bookings BookingCounter, logger Logger) *Service {
	return &Service{
		repo:         repo,
		bookings:     bookings,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Add объявляет выходной. Существующие бронирования на эту дату не отменяются,
// их количество возвращается в ответе.
func (s *Service) Add(ctx context.Context, req *AddRequest) (*AddResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxOffDayReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	offDay := domain.OffDay{
		Date:      domain.DateOnly(req.Date),
		Reason:    reason,
		CreatedAt: s.timeProvider.Now(),
	}

	if err := s.repo.Create(ctx, offDay); err != nil {
		if errors.Is(err, offdayRepo.ErrOffDayExists) {
			s.logger.Warn("Add: off-day %s already declared", domain.DateKey(offDay.Date))
			return nil, ErrOffDayExists
		}
		s.logger.Error("Add: repository error for %s: %v", domain.DateKey(offDay.Date), err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	affected, err := s.bookings.CountActiveOnDate(ctx, offDay.Date)
	if err != nil {
		// выходной уже сохранен, счетчик только информационный
		s.logger.Error("Add: failed to count bookings on %s: %v", domain.DateKey(offDay.Date), err)
		affected = 0
	}
	if affected > 0 {
		s.logger.Warn("Add: off-day %s has %d active bookings", domain.DateKey(offDay.Date), affected)
	}

	s.logger.Info("Add: off-day %s declared", domain.DateKey(offDay.Date))
	return &AddResponse{OffDayResponse: fromDomain(offDay), AffectedBookings: affected}, nil
}

// Remove отменяет выходной
func (s *Service) Remove(ctx context.Context, date time.Time) error {
	if err := s.repo.Delete(ctx, date); err != nil {
		if errors.Is(err, offdayRepo.ErrOffDayNotFound) {
			return ErrOffDayNotFound
		}
		s.logger.Error("Remove: repository error for %s: %v", domain.DateKey(date), err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: off-day %s removed", domain.DateKey(date))
	return nil
}

// List возвращает выходные в диапазоне дат
func (s *Service) List(ctx context.Context, from, to *time.Time) (*ListResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	offDays, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &ListResponse{OffDays: make([]OffDayResponse, 0, len(offDays))}
	for _, od := range offDays {
		resp.OffDays = append(resp.OffDays, fromDomain(od))
	}
	return resp, nil
}

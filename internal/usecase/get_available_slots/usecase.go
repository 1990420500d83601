package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	offDayRepo   OffDayRepository
	engine       Engine
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	offDayRepo OffDayRepository,
	engine Engine,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		offDayRepo:   offDayRepo,
		engine:       engine,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности.
// Читает без блокировок: результат информационный, окончательная проверка делается при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: date=%s", domain.DateKey(date))

	// 2. Проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(date, now, uc.engine.Schedule().Location(), uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Выходной?
	isOff, err := uc.offDayRepo.Exists(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check off-day %s: %v", domain.DateKey(date), err)
		return nil, fmt.Errorf("%w: failed to check off-day: %v", ErrInternal, err)
	}
	offDays := domain.NewOffDaySet()
	if isOff {
		offDays.Add(date)
	}

	// 4. Активные бронирования на дату
	active, err := uc.bookingRepo.GetActiveOccupancies(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings on %s: %v", domain.DateKey(date), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for _, m := range uc.engine.Malformed(active) {
		uc.logger.Warn("GetAvailableSlots: malformed booking id=%s on %s: start=%q, duration=%d",
			m.BookingID, domain.DateKey(date), m.Start, m.Duration)
	}

	// 5. Считаем доступность
	day := uc.engine.Day(date, active, offDays)

	resp := &Response{
		Date:         date,
		Closed:       day.Closed,
		ClosedReason: day.Detail,
		Slots:        make([]Slot, 0, len(day.Slots)),
	}
	for _, s := range day.Slots {
		resp.Slots = append(resp.Slots, Slot{
			Start:       string(s.Slot),
			Available:   s.Free,
			MaxDuration: s.MaxDuration,
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s, closed=%t, slots=%d, bookings=%d",
		domain.DateKey(date), day.Closed, len(resp.Slots), len(active))
	return resp, nil
}

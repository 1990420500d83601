package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	offDayRepo   OffDayRepository
	engine       Engine
	pricing      PriceQuoter
	locker       DateLocker
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger

	// Последняя выданная метка created_at
	mu       sync.Mutex
	lastTime time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	offDayRepo OffDayRepository,
	engine Engine,
	pricing PriceQuoter,
	locker DateLocker,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		offDayRepo:   offDayRepo,
		engine:       engine,
		pricing:      pricing,
		locker:       locker,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Чтение активных бронирований, проверка и запись выполняются под блокировкой даты:
// внутрипроцессный мьютекс и advisory lock в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Нечитаемая длительность становится нулевой, движок отклонит ее как invalid_slot
	duration := parseDuration(req.Duration)
	if duration < 1 {
		uc.logger.Warn("CreateBooking: unparseable duration %q", req.Duration)
	}

	date := domain.DateOnly(req.Date)
	dateKey := domain.DateKey(date)
	candidate := domain.Candidate{Start: domain.Slot(req.TimeSlot), Duration: duration}

	uc.logger.Info("CreateBooking: name=%q, date=%s, slot=%s, duration=%d, package=%q",
		req.Name, dateKey, candidate.Start, candidate.Duration, req.Package)

	// 2. Проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(date, now, uc.engine.Schedule().Location(), uc.settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Блокируем дату внутри процесса
	lockCtx := ctx
	if uc.settings.LockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, uc.settings.LockTimeout)
		defer cancel()
	}
	unlock, err := uc.locker.LockContext(lockCtx, dateKey)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to lock date %s: %v", dateKey, err)
		return nil, fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
	}
	defer unlock()

	// Переменные для хранения результата
	var (
		result *domain.Booking
		quote  *pricing.Quote
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем дату между инстансами сервиса
		if err := uc.bookingRepo.LockDate(txCtx, date); err != nil {
			uc.logger.Error("CreateBooking: failed to acquire advisory lock for %s: %v", dateKey, err)
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		// 4.2. Выходной, объявленный админом?
		isOff, err := uc.offDayRepo.Exists(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check off-day %s: %v", dateKey, err)
			return fmt.Errorf("%w: failed to check off-day: %w", ErrInternal, err)
		}
		offDays := domain.NewOffDaySet()
		if isOff {
			offDays.Add(date)
		}

		// 4.3. Получаем все активные бронирования на дату с блокировкой (FOR UPDATE)
		active, err := uc.bookingRepo.GetActiveOccupancies(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings on %s: %v", dateKey, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		for _, m := range uc.engine.Malformed(active) {
			uc.logger.Warn("CreateBooking: malformed booking id=%s on %s: start=%q, duration=%d",
				m.BookingID, dateKey, m.Start, m.Duration)
		}

		// 4.4. Проверяем доступность
		decision := uc.engine.Evaluate(date, candidate, active, offDays)
		uc.metrics.IncBookingDecision(decision.Result())
		if !decision.Accepted {
			uc.logger.Warn("CreateBooking: rejected date=%s, slot=%s, duration=%d: %s (%s)",
				dateKey, candidate.Start, candidate.Duration, decision.Reason, decision.Detail)
			return NewRejectedError(decision)
		}

		// 4.5. Считаем стоимость принятой заявки
		quote, err = uc.pricing.Quote(req.Package, req.Addons, candidate.Duration)
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownPackage) || errors.Is(err, pricing.ErrUnknownAddon) ||
				errors.Is(err, pricing.ErrInvalidDuration) {
				uc.logger.Warn("CreateBooking: pricing rejected request: %v", err)
				return fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			uc.logger.Error("CreateBooking: failed to quote price: %v", err)
			return fmt.Errorf("%w: failed to quote price: %w", ErrInternal, err)
		}

		// 4.6. Создаем запись
		booking := uc.buildBooking(req, date, candidate, quote)

		// 4.7. Сохраняем бронирование
		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s, total=%d %s",
		result.ID, result.Status, result.TotalPrice, result.Currency)

	// 5. Уведомляем после коммита
	uc.notifier.Notify(notifications.EventCreated, result)

	return &Response{Booking: result, Quote: quote}, nil
}

// buildBooking собирает запись из принятой заявки
func (uc *UseCase) buildBooking(req *Request, date time.Time, candidate domain.Candidate, quote *pricing.Quote) *domain.Booking {
	createdAt := uc.stamp()

	status := domain.StatusActive
	payment := domain.PaymentNotRequired
	if uc.settings.PaymentWorkflow {
		status = domain.StatusPendingPayment
		payment = domain.PaymentUnpaid
	}

	return &domain.Booking{
		ID: uuid.New().String(),
		Customer: domain.Customer{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Company: req.Company,
		},
		Setup:         req.Setup,
		People:        req.People,
		Package:       req.Package,
		Addons:        req.Addons,
		Frequency:     req.Frequency,
		Requirements:  req.Requirements,
		Referral:      req.Referral,
		BookingDate:   date,
		StartSlot:     candidate.Start,
		DurationSlots: candidate.Duration,
		Status:        status,
		PaymentStatus: payment,
		TotalPrice:    quote.Total,
		Currency:      quote.Currency,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

// stamp возвращает строго возрастающую метку времени с точностью до микросекунды (как в postgres)
func (uc *UseCase) stamp() time.Time {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.timeProvider.Now().UTC().Truncate(time.Microsecond)
	if !now.After(uc.lastTime) {
		now = uc.lastTime.Add(time.Microsecond)
	}
	uc.lastTime = now

	return now
}

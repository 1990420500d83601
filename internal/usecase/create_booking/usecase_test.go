package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/notifications"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
	"github.com/m04kA/SMC-StudioBooking/pkg/keymutex"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

// ========== Mocks ==========

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) LockDate(ctx context.Context, date time.Time) error {
	return m.Called(ctx, date).Error(0)
}

func (m *MockBookingRepository) GetActiveOccupancies(ctx context.Context, date time.Time) ([]domain.Occupancy, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Occupancy), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

type MockOffDayRepository struct {
	mock.Mock
}

func (m *MockOffDayRepository) Exists(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(event notifications.Event, booking *domain.Booking) {
	m.Called(event, booking)
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (f *fakeMetrics) IncBookingDecision(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// ========== Helpers ==========

var (
	// суббота, 18 октября 2025
	now    = time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)
	monday = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	bookings *MockBookingRepository
	offDays  *MockOffDayRepository
	notifier *MockNotifier
	tx       *fakeTxManager
	metrics  *fakeMetrics
}

func newFixture(t *testing.T, settings Settings) *fixture {
	t.Helper()

	catalog, err := domain.NewSlotCatalog(domain.DefaultSlotLabels)
	require.NoError(t, err)
	schedule, err := domain.NewStudioSchedule(catalog, domain.WithClosedWeekday(time.Sunday))
	require.NoError(t, err)

	prices := pricing.NewService(pricing.Config{
		Currency:   "INR",
		HourlyRate: 150000,
		Packages:   map[string]int64{"podcast": 200000},
		Addons:     map[string]int64{"makeup": 50000},
	})

	f := &fixture{
		bookings: new(MockBookingRepository),
		offDays:  new(MockOffDayRepository),
		notifier: new(MockNotifier),
		tx:       &fakeTxManager{},
		metrics:  &fakeMetrics{},
	}
	f.uc = NewUseCase(
		f.bookings,
		f.offDays,
		availability.NewEngine(schedule),
		prices,
		keymutex.New(),
		f.tx,
		f.notifier,
		f.metrics,
		settings,
		logger.NewNop(),
	)
	f.uc.timeProvider = fixedTime{now: now}

	return f
}

func validRequest() *Request {
	return &Request{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "+919812345678",
		Package:  "podcast",
		Addons:   []string{"makeup"},
		People:   3,
		Date:     monday,
		TimeSlot: "12:00",
		Duration: "2 hours",
	}
}

// ========== Tests ==========

func TestUseCase_Execute_Accepted(t *testing.T) {
	f := newFixture(t, Settings{})

	f.bookings.On("LockDate", mock.Anything, monday).Return(nil)
	f.offDays.On("Exists", mock.Anything, monday).Return(false, nil)
	f.bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{
		{BookingID: "b-1", Start: "10:00", Duration: 2},
	}, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifier.On("Notify", notifications.EventCreated, mock.AnythingOfType("*domain.Booking")).Return()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, domain.Slot("12:00"), b.StartSlot)
	assert.Equal(t, 2, b.DurationSlots)
	assert.Equal(t, domain.StatusActive, b.Status)
	assert.Equal(t, domain.PaymentNotRequired, b.PaymentStatus)
	assert.Equal(t, int64(2*200000+50000), b.TotalPrice)
	assert.Equal(t, "INR", b.Currency)
	assert.Equal(t, monday, b.BookingDate)
	assert.Equal(t, b.TotalPrice, resp.Quote.Total)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"accepted"}, f.metrics.results)
	f.bookings.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestUseCase_Execute_PaymentWorkflow(t *testing.T) {
	f := newFixture(t, Settings{PaymentWorkflow: true})

	f.bookings.On("LockDate", mock.Anything, monday).Return(nil)
	f.offDays.On("Exists", mock.Anything, monday).Return(false, nil)
	f.bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{}, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifier.On("Notify", notifications.EventCreated, mock.AnythingOfType("*domain.Booking")).Return()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, resp.Booking.Status)
	assert.Equal(t, domain.PaymentUnpaid, resp.Booking.PaymentStatus)
}

func TestUseCase_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		slot     string
		duration string
		pkg      string
		offDay   bool
		active   []domain.Occupancy
		wantErr  error
		wantConf string
	}{
		{
			name:     "overlap",
			date:     monday,
			slot:     "12:00",
			duration: "2",
			active:   []domain.Occupancy{{BookingID: "b-1", Start: "11:00", Duration: 2}},
			wantErr:  ErrSlotOverlap,
			wantConf: "b-1",
		},
		{
			name:     "weekly closed day",
			date:     sunday,
			slot:     "12:00",
			duration: "1",
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "off-day",
			date:     monday,
			slot:     "12:00",
			duration: "1",
			offDay:   true,
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "unknown slot",
			date:     monday,
			slot:     "9:00",
			duration: "1",
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "past closing",
			date:     monday,
			slot:     "5:00",
			duration: "3",
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "zero duration",
			date:     monday,
			slot:     "12:00",
			duration: "0",
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "unparseable duration",
			date:     monday,
			slot:     "12:00",
			duration: "two",
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "empty slot",
			date:     monday,
			slot:     "",
			duration: "1",
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "closed day wins over zero duration",
			date:     sunday,
			slot:     "12:00",
			duration: "0",
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "closed day wins over unparseable duration",
			date:     sunday,
			slot:     "12:00",
			duration: "abc",
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "closed day wins over duration past closing",
			date:     sunday,
			slot:     "10:00",
			duration: "12",
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "closed day wins over unknown slot",
			date:     sunday,
			slot:     "9:00",
			duration: "1",
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "closed day wins over unknown package",
			date:     sunday,
			slot:     "12:00",
			duration: "1",
			pkg:      "nope",
			wantErr:  ErrStudioClosed,
		},
		{
			name:     "off-day wins over invalid slot",
			date:     monday,
			slot:     "6:00",
			duration: "3",
			offDay:   true,
			wantErr:  ErrStudioClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Settings{})

			active := tt.active
			if active == nil {
				active = []domain.Occupancy{}
			}
			f.bookings.On("LockDate", mock.Anything, tt.date).Return(nil)
			f.offDays.On("Exists", mock.Anything, tt.date).Return(tt.offDay, nil)
			f.bookings.On("GetActiveOccupancies", mock.Anything, tt.date).Return(active, nil)

			req := validRequest()
			req.Date = tt.date
			req.TimeSlot = tt.slot
			req.Duration = tt.duration
			if tt.pkg != "" {
				req.Package = tt.pkg
			}

			resp, err := f.uc.Execute(context.Background(), req)
			assert.Nil(t, resp)
			require.ErrorIs(t, err, tt.wantErr)

			var rejected *RejectedError
			require.True(t, errors.As(err, &rejected))
			assert.Equal(t, tt.wantConf, rejected.Decision.ConflictingBookingID)

			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
			assert.Len(t, f.metrics.results, 1)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no name", mutate: func(r *Request) { r.Name = "  " }, wantErr: ErrInvalidInput},
		{name: "no contact", mutate: func(r *Request) { r.Email = ""; r.Phone = "" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.Email = "not-an-email" }, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = now.AddDate(0, 0, -1) }, wantErr: ErrInvalidDate},
		{name: "too far", mutate: func(r *Request) { r.Date = now.AddDate(0, 0, 40) }, wantErr: ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Settings{AdvanceBookingDays: 30})

			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestUseCase_Execute_UnknownPricingOption(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "unknown package", mutate: func(r *Request) { r.Package = "wedding" }},
		{name: "unknown addon", mutate: func(r *Request) { r.Addons = []string{"drone"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Settings{})
			f.bookings.On("LockDate", mock.Anything, monday).Return(nil)
			f.offDays.On("Exists", mock.Anything, monday).Return(false, nil)
			f.bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{}, nil)

			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var rejected *RejectedError
			assert.False(t, errors.As(err, &rejected))
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_FullDay(t *testing.T) {
	f := newFixture(t, Settings{})

	f.bookings.On("LockDate", mock.Anything, monday).Return(nil)
	f.offDays.On("Exists", mock.Anything, monday).Return(false, nil)
	f.bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{}, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifier.On("Notify", notifications.EventCreated, mock.AnythingOfType("*domain.Booking")).Return()

	req := validRequest()
	req.TimeSlot = "10:00"
	req.Duration = "9"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.Slot("10:00"), resp.Booking.StartSlot)
	assert.Equal(t, 9, resp.Booking.DurationSlots)
	assert.Equal(t, int64(9*200000+50000), resp.Booking.TotalPrice)
	assert.Equal(t, []string{"accepted"}, f.metrics.results)
}

func TestUseCase_Execute_PhoneOnly(t *testing.T) {
	f := newFixture(t, Settings{})

	f.bookings.On("LockDate", mock.Anything, monday).Return(nil)
	f.offDays.On("Exists", mock.Anything, monday).Return(false, nil)
	f.bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{}, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifier.On("Notify", notifications.EventCreated, mock.AnythingOfType("*domain.Booking")).Return()

	req := validRequest()
	req.Email = ""

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestUseCase_Execute_RepositoryErrors(t *testing.T) {
	t.Run("lock", func(t *testing.T) {
		f := newFixture(t, Settings{})
		f.bookings.On("LockDate", mock.Anything, monday).Return(errors.New("conn reset"))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture(t, Settings{})
		f.bookings.On("LockDate", mock.Anything, monday).Return(nil)
		f.offDays.On("Exists", mock.Anything, monday).Return(false, nil)
		f.bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate"))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestUseCase_Stamp_Monotonic(t *testing.T) {
	f := newFixture(t, Settings{})

	first := f.uc.stamp()
	second := f.uc.stamp()
	assert.True(t, second.After(first))
}

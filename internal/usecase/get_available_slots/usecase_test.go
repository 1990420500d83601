package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetActiveOccupancies(ctx context.Context, date time.Time) ([]domain.Occupancy, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Occupancy), args.Error(1)
}

type MockOffDayRepository struct {
	mock.Mock
}

func (m *MockOffDayRepository) Exists(ctx context.Context, date time.Time) (bool, error) {
	args := m.Called(ctx, date)
	return args.Bool(0), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	// суббота, 18 октября 2025
	now    = time.Date(2025, 10, 18, 10, 0, 0, 0, time.UTC)
	monday = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(t *testing.T, bookings *MockBookingRepository, offDays *MockOffDayRepository, settings Settings) *UseCase {
	t.Helper()

	catalog, err := domain.NewSlotCatalog(domain.DefaultSlotLabels)
	require.NoError(t, err)
	schedule, err := domain.NewStudioSchedule(catalog, domain.WithClosedWeekday(time.Sunday))
	require.NoError(t, err)

	uc := NewUseCase(bookings, offDays, availability.NewEngine(schedule), settings, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	bookings := new(MockBookingRepository)
	offDays := new(MockOffDayRepository)

	offDays.On("Exists", mock.Anything, monday).Return(false, nil)
	bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{
		{BookingID: "b-1", Start: "11:00", Duration: 2},
	}, nil)

	resp, err := newTestUseCase(t, bookings, offDays, Settings{}).Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, Slot{Start: "10:00", Available: true, MaxDuration: 1}, resp.Slots[0])
	assert.Equal(t, Slot{Start: "11:00", Available: false, MaxDuration: 0}, resp.Slots[1])
	assert.Equal(t, Slot{Start: "1:00", Available: true, MaxDuration: 6}, resp.Slots[3])
}

func TestUseCase_Execute_Closed(t *testing.T) {
	bookings := new(MockBookingRepository)
	offDays := new(MockOffDayRepository)

	offDays.On("Exists", mock.Anything, monday).Return(true, nil)
	bookings.On("GetActiveOccupancies", mock.Anything, monday).Return([]domain.Occupancy{}, nil)

	resp, err := newTestUseCase(t, bookings, offDays, Settings{}).Execute(context.Background(), &Request{Date: monday})
	require.NoError(t, err)
	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_DateValidation(t *testing.T) {
	uc := newTestUseCase(t, new(MockBookingRepository), new(MockOffDayRepository), Settings{AdvanceBookingDays: 30})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: now.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Date: now.AddDate(0, 0, 31)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	bookings := new(MockBookingRepository)
	offDays := new(MockOffDayRepository)

	offDays.On("Exists", mock.Anything, monday).Return(false, nil)
	bookings.On("GetActiveOccupancies", mock.Anything, monday).Return(nil, errors.New("conn reset"))

	_, err := newTestUseCase(t, bookings, offDays, Settings{}).Execute(context.Background(), &Request{Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

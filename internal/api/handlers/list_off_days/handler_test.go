package list_off_days

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type MockOffDayService struct {
	mock.Mock
}

func (m *MockOffDayService) List(ctx context.Context, from, to *time.Time) (*offdays.ListResponse, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offdays.ListResponse), args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	from := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	svc := new(MockOffDayService)
	svc.On("List", mock.Anything, &from, (*time.Time)(nil)).Return(&offdays.ListResponse{
		OffDays: []offdays.OffDayResponse{{Date: "2025-12-25", Reason: "holiday"}},
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/off-days?from=2025-12-01", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2025-12-25")
	svc.AssertExpectations(t)
}

func TestHandler_Handle_BadParams(t *testing.T) {
	for _, q := range []string{"?from=yesterday", "?to=31-12-2025"} {
		w := httptest.NewRecorder()
		NewHandler(new(MockOffDayService), logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/off-days"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

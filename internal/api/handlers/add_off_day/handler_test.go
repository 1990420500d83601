package add_off_day

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type MockOffDayService struct {
	mock.Mock
}

func (m *MockOffDayService) Add(ctx context.Context, req *offdays.AddRequest) (*offdays.AddResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offdays.AddResponse), args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	svc := new(MockOffDayService)
	svc.On("Add", mock.Anything, &offdays.AddRequest{
		Date:   time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Reason: "holiday",
	}).Return(&offdays.AddResponse{
		OffDayResponse:   offdays.OffDayResponse{Date: "2025-12-25", Reason: "holiday"},
		AffectedBookings: 2,
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/off-days",
		strings.NewReader(`{"date":"2025-12-25","reason":"holiday"}`)))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "2025-12-25", resp["date"])
	assert.Equal(t, float64(2), resp["affectedBookings"])
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad body", body: `nope`, wantStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"date":"25.12.2025"}`, wantStatus: http.StatusBadRequest},
		{name: "exists", body: `{"date":"2025-12-25"}`, err: offdays.ErrOffDayExists, wantStatus: http.StatusConflict},
		{name: "invalid", body: `{"date":"2025-12-25"}`, err: offdays.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", body: `{"date":"2025-12-25"}`, err: offdays.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOffDayService)
			svc.On("Add", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/off-days",
				strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

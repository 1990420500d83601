package mark_paid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) MarkPaid(ctx context.Context, id string, req *models.MarkPaidRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

const id = "7c0c6d0e-9b6e-4a53-9f0e-2d7f5e0f2a11"

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		resp       *models.BookingResponse
		err        error
		wantStatus int
	}{
		{
			name:       "paid",
			body:       `{"paymentReference":"UPI-123"}`,
			resp:       &models.BookingResponse{ID: id, PaymentStatus: "paid"},
			wantStatus: http.StatusOK,
		},
		{name: "bad body", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "not awaiting", body: `{"paymentReference":"UPI-123"}`, err: bookings.ErrCannotMarkPaid, wantStatus: http.StatusConflict},
		{name: "not found", body: `{"paymentReference":"UPI-123"}`, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "no reference", body: `{"paymentReference":""}`, err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("MarkPaid", mock.Anything, id, mock.Anything).Return(tt.resp, tt.err)

			r := mux.SetURLVars(
				httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/payment", strings.NewReader(tt.body)),
				map[string]string{"bookingId": id})
			w := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

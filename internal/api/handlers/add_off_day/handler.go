package add_off_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные выходного"
	msgOffDayExists       = "выходной на эту дату уже объявлен"
)

type Handler struct {
	service OffDayService
	logger  Logger
}

func NewHandler(service OffDayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/off-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AddOffDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/off-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/off-days - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Add(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, offdays.ErrOffDayExists):
			h.logger.Warn("POST /admin/off-days - Already declared: date=%s", req.Date)
			handlers.RespondConflict(w, msgOffDayExists)

		case errors.Is(err, offdays.ErrInvalidInput):
			h.logger.Warn("POST /admin/off-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/off-days - Failed to add off-day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/off-days - Off-day added: date=%s, affected_bookings=%d", result.Date, result.AffectedBookings)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

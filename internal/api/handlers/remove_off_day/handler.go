package remove_off_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "выходной не найден"
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

// Handle DELETE /api/v1/admin/off-days/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("DELETE /admin/off-days/{date} - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Remove(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, offdays.ErrOffDayNotFound):
			h.logger.Warn("DELETE /admin/off-days/{date} - Not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/off-days/{date} - Failed to remove off-day: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/off-days/{date} - Off-day removed: date=%s", dateStr)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

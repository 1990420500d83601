package list_off_days

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
)

const (
	msgInvalidParams = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
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

// Handle GET /api/v1/admin/off-days
// Query params: from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := parseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/off-days - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	to, err := parseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/off-days - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, offdays.ErrInvalidInput):
			h.logger.Warn("GET /admin/off-days - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/off-days - Failed to list off-days: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/off-days - Off-days retrieved successfully: count=%d", len(result.OffDays))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

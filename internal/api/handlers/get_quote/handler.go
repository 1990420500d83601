package get_quote

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
)

const (
	msgInvalidDuration = "некорректная длительность"
	msgUnknownPackage  = "неизвестный пакет"
	msgUnknownAddon    = "неизвестная опция"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/quote
// Query params: duration (required), package, addons (через запятую или повтором параметра)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	hours, err := domain.ParseDurationSlots(query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /quote - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	var addons []string
	for _, v := range query["addons"] {
		addons = append(addons, strings.Split(v, ",")...)
	}
	pkg := query.Get("package")

	quote, err := h.service.Quote(pkg, addons, hours)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrUnknownPackage):
			h.logger.Warn("GET /quote - Unknown package: %q", pkg)
			handlers.RespondBadRequest(w, msgUnknownPackage)

		case errors.Is(err, pricing.ErrUnknownAddon):
			h.logger.Warn("GET /quote - Unknown addon: %v", err)
			handlers.RespondBadRequest(w, msgUnknownAddon)

		case errors.Is(err, pricing.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /quote - Failed to quote: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /quote - package=%q, hours=%d, total=%d %s", quote.Package, quote.Hours, quote.Total, quote.Currency)
	handlers.RespondJSON(w, http.StatusOK, quote)
}

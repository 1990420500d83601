package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgStudioClosed       = "студия закрыта в выбранную дату"
	msgInvalidSlot        = "некорректный временной слот или длительность"
	msgSlotOverlap        = "выбранное время пересекается с другим бронированием"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejected *createBooking.RejectedError

		switch {
		case errors.Is(err, createBooking.ErrSlotOverlap) && errors.As(err, &rejected):
			h.logger.Warn("POST /bookings - Slot overlap: date=%s, slot=%s, conflicting_booking=%s",
				req.Date, req.TimeSlot, rejected.Decision.ConflictingBookingID)
			handlers.RespondJSON(w, http.StatusConflict,
				FromRejection(http.StatusConflict, msgSlotOverlap, rejected.Decision))

		case errors.Is(err, createBooking.ErrStudioClosed) && errors.As(err, &rejected):
			h.logger.Warn("POST /bookings - Studio closed: date=%s", req.Date)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity,
				FromRejection(http.StatusUnprocessableEntity, msgStudioClosed, rejected.Decision))

		case errors.Is(err, createBooking.ErrInvalidSlot) && errors.As(err, &rejected):
			h.logger.Warn("POST /bookings - Invalid slot: date=%s, slot=%s, duration=%s",
				req.Date, req.TimeSlot, req.Duration)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity,
				FromRejection(http.StatusUnprocessableEntity, msgInvalidSlot, rejected.Decision))

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, slot=%s",
		result.Booking.ID, req.Date, req.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

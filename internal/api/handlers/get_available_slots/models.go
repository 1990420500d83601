package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date         string         `json:"date"`
	Closed       bool           `json:"closed"`
	ClosedReason string         `json:"closedReason,omitempty"`
	Slots        []SlotResponse `json:"slots"`
}

// SlotResponse состояние слота
type SlotResponse struct {
	Start       string `json:"start"`
	Available   bool   `json:"available"`
	MaxDuration int    `json:"maxDuration"`
}

// ToUseCaseRequest формирует запрос к use case из query параметра date
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		Closed:       resp.Closed,
		ClosedReason: resp.ClosedReason,
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Start:       s.Start,
			Available:   s.Available,
			MaxDuration: s.MaxDuration,
		})
	}

	return out
}

package add_off_day

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/offdays"
)

// AddOffDayRequest HTTP request model
type AddOffDayRequest struct {
	Date   string `json:"date"` // "2025-12-25"
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddOffDayRequest) ToServiceRequest() (*offdays.AddRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &offdays.AddRequest{
		Date:   date,
		Reason: r.Reason,
	}, nil
}

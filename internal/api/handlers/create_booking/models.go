package create_booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

// Duration длительность из формы: число (2) или строка ("2", "2 hours")
type Duration string

func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Duration(s)
		return nil
	}

	// Любое число передается дальше как есть: дробное или отрицательное отклонит движок
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a number or a string: %w", err)
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		*d = Duration(strconv.Itoa(i))
		return nil
	}
	*d = Duration(n.String())
	return nil
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`

	Setup        string   `json:"setup"`
	People       int      `json:"people"`
	Package      string   `json:"package"`
	Addons       []string `json:"addons"`
	Frequency    string   `json:"frequency"`
	Requirements string   `json:"requirements"`
	Referral     string   `json:"referral"`

	Date     string   `json:"date"`     // "2025-10-20"
	TimeSlot string   `json:"timeSlot"` // "11:00"
	Duration Duration `json:"duration"` // 2 или "2 hours"
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Quote   *pricing.Quote          `json:"quote"`
}

// RejectionResponse тело ответа при отказе движка доступности
type RejectionResponse struct {
	Code             int      `json:"code"`
	Message          string   `json:"message"`
	Reason           string   `json:"reason"`
	Detail           string   `json:"detail,omitempty"`
	ConflictingSlots []string `json:"conflictingSlots,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Company:      r.Company,
		Setup:        r.Setup,
		People:       r.People,
		Package:      r.Package,
		Addons:       r.Addons,
		Frequency:    r.Frequency,
		Requirements: r.Requirements,
		Referral:     r.Referral,
		Date:         bookingDate,
		TimeSlot:     r.TimeSlot,
		Duration:     string(r.Duration),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Quote:   resp.Quote,
	}
}

// FromRejection формирует тело ответа по решению движка
func FromRejection(status int, message string, d domain.Decision) *RejectionResponse {
	resp := &RejectionResponse{
		Code:    status,
		Message: message,
		Reason:  string(d.Reason),
		Detail:  d.Detail,
	}
	for _, s := range d.ConflictingWindow {
		resp.ConflictingSlots = append(resp.ConflictingSlots, string(s))
	}
	return resp
}

package offdays

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// AddRequest запрос на объявление выходного
type AddRequest struct {
	Date   time.Time
	Reason string
}

// OffDayResponse выходной день
type OffDayResponse struct {
	Date      string    `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddResponse результат добавления выходного.
// AffectedBookings > 0 означает, что на дату уже есть активные бронирования, их нужно отменить вручную.
type AddResponse struct {
	OffDayResponse
	AffectedBookings int `json:"affectedBookings"`
}

// ListResponse список выходных
type ListResponse struct {
	OffDays []OffDayResponse `json:"offDays"`
}

func fromDomain(od domain.OffDay) OffDayResponse {
	return OffDayResponse{
		Date:      domain.DateKey(od.Date),
		Reason:    od.Reason,
		CreatedAt: od.CreatedAt,
	}
}

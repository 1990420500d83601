package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/pricing"
)

// Request модель запроса на создание бронирования
type Request struct {
	Name    string
	Email   string
	Phone   string
	Company string

	Setup        string
	People       int
	Package      string
	Addons       []string
	Frequency    string
	Requirements string
	Referral     string

	Date     time.Time // Дата бронирования (без времени)
	TimeSlot string    // Метка начального слота, например "11:00"
	Duration string    // Длительность в часах: "2", "2h", "2 hours"
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Quote   *pricing.Quote
}

// Settings параметры студии для создания бронирования
type Settings struct {
	AdvanceBookingDays int  // 0 = без ограничений
	PaymentWorkflow    bool // Бронирование ждет оплаты и подтверждения админом
	LockTimeout        time.Duration
}

package domain

// DefaultSlotLabels hourly start labels of a studio day, 10 AM to 6 PM
var DefaultSlotLabels = []string{
	"10:00", "11:00", "12:00", "1:00", "2:00", "3:00", "4:00", "5:00", "6:00",
}

// Default configuration values
const (
	DefaultMalformedDurationSlots = 2
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
	DefaultPendingPaymentTTLMins  = 24 * 60
	DefaultCurrency               = "INR"
)

// Business validation constants
const (
	MaxNameLength               = 200
	MaxRequirementsLength       = 2000
	MaxCancellationReasonLength = 500
	MaxPaymentReferenceLength   = 200
	MaxOffDayReasonLength       = 200
	MaxAddons                   = 20
	MaxPeople                   = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают слоты
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
}

// ActiveStatuses статусы, которые участвуют в проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusActive,
	StatusPendingPayment,
	StatusConfirmed,
}

// AllStatuses все допустимые статусы
var AllStatuses = append(append([]BookingStatus{}, ActiveStatuses...), InactiveStatuses...)

// ParseBookingStatus валидирует строковый статус
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

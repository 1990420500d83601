package notifications

// Event тип события бронирования
type Event string

const (
	EventCreated   Event = "created"
	EventPaid      Event = "paid"
	EventConfirmed Event = "confirmed"
	EventCancelled Event = "cancelled"
	EventExpired   Event = "expired"
)

// Message текст уведомления
type Message struct {
	Subject string
	Text    string
	SMS     string
}

// Config параметры доставки
type Config struct {
	AdminEmail string
	Timeout    int // секунды
}

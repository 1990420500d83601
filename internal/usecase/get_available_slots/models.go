package get_available_slots

import "time"

// Request модель запроса на получение доступности дня
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response доступность слотов на дату
type Response struct {
	Date         time.Time
	Closed       bool
	ClosedReason string
	Slots        []Slot
}

// Slot состояние одного слота каталога
type Slot struct {
	Start       string // Метка слота, например "11:00"
	Available   bool
	MaxDuration int // Максимальная длительность в часах, которую можно начать с этого слота
}

// Settings параметры студии для расчета
type Settings struct {
	AdvanceBookingDays int // 0 = без ограничений
}

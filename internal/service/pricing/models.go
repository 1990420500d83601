package pricing

// Config прайс студии, суммы в минимальных единицах валюты
type Config struct {
	Currency   string
	HourlyRate int64
	Packages   map[string]int64 // почасовая ставка пакета
	Addons     map[string]int64 // фиксированная цена опции за бронирование
}

// AddonPrice цена одной опции
type AddonPrice struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Quote расчет стоимости бронирования
type Quote struct {
	Package  string       `json:"package,omitempty"`
	Hourly   int64        `json:"hourlyRate"`
	Hours    int          `json:"hours"`
	Base     int64        `json:"base"`
	Addons   []AddonPrice `json:"addons"`
	Total    int64        `json:"total"`
	Currency string       `json:"currency"`
}

package get_quote

import "github.com/m04kA/SMC-StudioBooking/internal/service/pricing"

type PricingService interface {
	Quote(pkg string, addons []string, hours int) (*pricing.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

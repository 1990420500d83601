package pricing

import (
	"fmt"
	"strings"
)

// Service считает стоимость бронирований по неизменяемому прайсу
type Service struct {
	currency   string
	hourlyRate int64
	packages   map[string]int64
	addons     map[string]int64
}

func NewService(cfg Config) *Service {
	return &Service{
		currency:   cfg.Currency,
		hourlyRate: cfg.HourlyRate,
		packages:   normalize(cfg.Packages),
		addons:     normalize(cfg.Addons),
	}
}

// Quote считает стоимость: ставка пакета (или базовая) * часы + опции.
// Повторяющиеся опции учитываются один раз.
func (s *Service) Quote(pkg string, addons []string, hours int) (*Quote, error) {
	if hours < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, hours)
	}

	q := &Quote{
		Package:  key(pkg),
		Hourly:   s.hourlyRate,
		Hours:    hours,
		Addons:   make([]AddonPrice, 0, len(addons)),
		Currency: s.currency,
	}

	if q.Package != "" {
		rate, ok := s.packages[q.Package]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, pkg)
		}
		q.Hourly = rate
	}

	q.Base = q.Hourly * int64(hours)
	q.Total = q.Base

	seen := make(map[string]struct{}, len(addons))
	for _, raw := range addons {
		name := key(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		price, ok := s.addons[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAddon, raw)
		}
		q.Addons = append(q.Addons, AddonPrice{Name: name, Price: price})
		q.Total += price
	}

	return q, nil
}

// Currency валюта прайса
func (s *Service) Currency() string {
	return s.currency
}

func normalize(prices map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(prices))
	for name, price := range prices {
		out[key(name)] = price
	}
	return out
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

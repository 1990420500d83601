package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const (
	minPhoneLength = 7
	maxPhoneLength = 20
	maxFieldLength = 200
)

// normalizeRequest обрезает пробелы в строковых полях
func normalizeRequest(req *Request) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Company = strings.TrimSpace(req.Company)
	req.Setup = strings.TrimSpace(req.Setup)
	req.Package = strings.TrimSpace(req.Package)
	req.Frequency = strings.TrimSpace(req.Frequency)
	req.Requirements = strings.TrimSpace(req.Requirements)
	req.Referral = strings.TrimSpace(req.Referral)
	req.TimeSlot = strings.TrimSpace(req.TimeSlot)

	addons := make([]string, 0, len(req.Addons))
	for _, a := range req.Addons {
		if a = strings.TrimSpace(a); a != "" {
			addons = append(addons, a)
		}
	}
	req.Addons = addons
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if req.Email == "" && req.Phone == "" {
		return fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}
	if req.Phone != "" && (len(req.Phone) < minPhoneLength || len(req.Phone) > maxPhoneLength) {
		return fmt.Errorf("%w: invalid phone", ErrInvalidInput)
	}

	for name, v := range map[string]string{
		"company":   req.Company,
		"setup":     req.Setup,
		"package":   req.Package,
		"frequency": req.Frequency,
		"referral":  req.Referral,
	} {
		if len(v) > maxFieldLength {
			return fmt.Errorf("%w: %s is too long", ErrInvalidInput, name)
		}
	}
	if len(req.Requirements) > domain.MaxRequirementsLength {
		return fmt.Errorf("%w: requirements are too long", ErrInvalidInput)
	}

	if req.People < 0 || req.People > domain.MaxPeople {
		return fmt.Errorf("%w: people must be between 0 and %d", ErrInvalidInput, domain.MaxPeople)
	}
	if len(req.Addons) > domain.MaxAddons {
		return fmt.Errorf("%w: too many addons", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// parseDuration разбирает длительность из формы, 0 если она нечитаема
func parseDuration(raw string) int {
	duration, err := domain.ParseDurationSlots(raw)
	if err != nil {
		return 0
	}
	return duration
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays.
// "Сегодня" считается в часовом поясе студии.
func validateDate(date time.Time, now time.Time, loc *time.Location, advanceBookingDays int) error {
	day := domain.DateOnly(date)
	today := domain.DateOnly(now.In(loc))

	if day.Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

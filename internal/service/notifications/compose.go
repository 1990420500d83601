package notifications

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Compose собирает тему и текст уведомления для события
func Compose(event Event, b *domain.Booking) Message {
	when := fmt.Sprintf("%s at %s for %s", b.BookingDate.Format("Mon, 02 Jan 2006"), b.StartSlot, hours(b.DurationSlots))

	var subject, lead string
	switch event {
	case EventCreated:
		subject = "Booking received"
		lead = "We have received your studio booking."
		if b.Status == domain.StatusPendingPayment {
			lead += " It will be held until payment is received."
		}
	case EventPaid:
		subject = "Payment received"
		lead = "Your payment has been recorded. An admin will confirm the booking shortly."
	case EventConfirmed:
		subject = "Booking confirmed"
		lead = "Your studio booking is confirmed."
	case EventCancelled:
		subject = "Booking cancelled"
		lead = "Your studio booking has been cancelled."
		if b.CancellationReason != nil && *b.CancellationReason != "" {
			lead += " Reason: " + *b.CancellationReason
		}
	case EventExpired:
		subject = "Booking expired"
		lead = "Your booking has expired because payment was not received in time."
	default:
		subject = "Booking update"
		lead = "Your studio booking was updated."
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s,\n\n%s\n\n", b.Customer.Name, lead)
	fmt.Fprintf(&text, "Booking ID: %s\n", b.ID)
	fmt.Fprintf(&text, "When: %s\n", when)
	if b.Package != "" {
		fmt.Fprintf(&text, "Package: %s\n", b.Package)
	}
	if len(b.Addons) > 0 {
		fmt.Fprintf(&text, "Add-ons: %s\n", strings.Join(b.Addons, ", "))
	}
	fmt.Fprintf(&text, "Total: %s %s\n", formatAmount(b.TotalPrice), b.Currency)
	fmt.Fprintf(&text, "Status: %s\n", b.Status)

	return Message{
		Subject: fmt.Sprintf("%s: %s", subject, b.ID),
		Text:    text.String(),
		SMS:     fmt.Sprintf("%s. %s, %s. ID %s", subject, b.Customer.Name, when, b.ID),
	}
}

func hours(n int) string {
	if n == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", n)
}

// formatAmount печатает сумму в минимальных единицах как 1500.00
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

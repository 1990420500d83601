package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusActive         BookingStatus = "active"
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusExpired        BookingStatus = "expired"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentNotRequired PaymentStatus = "not_required"
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentPaid        PaymentStatus = "paid"
)

// Customer holds the contact fields of a booking, stored as given
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// Booking represents a studio booking record
type Booking struct {
	ID       string
	Customer Customer

	// Session details from the booking form
	Setup        string
	People       int
	Package      string
	Addons       []string
	Frequency    string
	Requirements string
	Referral     string

	BookingDate   time.Time
	StartSlot     Slot
	DurationSlots int
	Status        BookingStatus

	PaymentStatus    PaymentStatus
	PaymentReference *string
	TotalPrice       int64 // minor units
	Currency         string

	CancellationReason *string
	CancelledAt        *time.Time
	PaidAt             *time.Time
	ConfirmedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slots
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive ||
		b.Status == StatusPendingPayment ||
		b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanBeMarkedPaid returns true if the booking is waiting for payment
func (b *Booking) CanBeMarkedPaid() bool {
	return b.Status == StatusPendingPayment && b.PaymentStatus == PaymentUnpaid
}

// CanBeConfirmed returns true if an admin may confirm the booking
func (b *Booking) CanBeConfirmed() bool {
	if b.Status == StatusActive {
		return true
	}
	return b.Status == StatusPendingPayment && b.PaymentStatus == PaymentPaid
}

// Occupancy returns the scheduling part of the booking
func (b *Booking) Occupancy() Occupancy {
	return Occupancy{
		BookingID: b.ID,
		Start:     b.StartSlot,
		Duration:  b.DurationSlots,
	}
}

// BookingsFilter фильтр для списка бронирований в админке
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать отмененные и просроченные
	Limit           int            // 0 = без ограничения
	Offset          int
}

package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр админского списка
type ListBookingsRequest struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// MarkPaidRequest запрос на отметку оплаты
type MarkPaidRequest struct {
	PaymentReference string `json:"paymentReference"`
}

// Response модели

// CustomerResponse контакты клиента
type CustomerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID       string           `json:"id"`
	Customer CustomerResponse `json:"customer"`

	Setup        string   `json:"setup,omitempty"`
	People       int      `json:"people,omitempty"`
	Package      string   `json:"package,omitempty"`
	Addons       []string `json:"addons"`
	Frequency    string   `json:"frequency,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Referral     string   `json:"referral,omitempty"`

	BookingDate   string   `json:"bookingDate"` // "2025-10-15"
	StartSlot     string   `json:"startSlot"`   // "11:00"
	DurationSlots int      `json:"durationSlots"`
	Slots         []string `json:"slots,omitempty"`
	Status        string   `json:"status"`

	PaymentStatus    string  `json:"paymentStatus"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	TotalPrice       int64   `json:"totalPrice"`
	Currency         string  `json:"currency"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	addons := b.Addons
	if addons == nil {
		addons = []string{}
	}

	return &BookingResponse{
		ID: b.ID,
		Customer: CustomerResponse{
			Name:    b.Customer.Name,
			Email:   b.Customer.Email,
			Phone:   b.Customer.Phone,
			Company: b.Customer.Company,
		},
		Setup:              b.Setup,
		People:             b.People,
		Package:            b.Package,
		Addons:             addons,
		Frequency:          b.Frequency,
		Requirements:       b.Requirements,
		Referral:           b.Referral,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartSlot:          string(b.StartSlot),
		DurationSlots:      b.DurationSlots,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentReference:   b.PaymentReference,
		TotalPrice:         b.TotalPrice,
		Currency:           b.Currency,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		PaidAt:             b.PaidAt,
		ConfirmedAt:        b.ConfirmedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}
	resp.Total = len(resp.Bookings)

	return resp
}

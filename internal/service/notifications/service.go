package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

const logChannel = "log"

// Service рассылает уведомления о бронированиях.
// Доставка асинхронная и best-effort: ошибки логируются и считаются в метриках.
type Service struct {
	email      EmailSender
	sms        SMSSender
	adminEmail string
	timeout    time.Duration
	metrics    Metrics
	logger     Logger

	wg sync.WaitGroup
}

// NewService создает сервис уведомлений. email и sms могут быть nil,
// тогда уведомление только пишется в лог.
func NewService(email EmailSender, sms SMSSender, cfg Config, metrics Metrics, logger Logger) *Service {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Service{
		email:      email,
		sms:        sms,
		adminEmail: cfg.AdminEmail,
		timeout:    timeout,
		metrics:    metrics,
		logger:     logger,
	}
}

// Notify отправляет уведомление в фоне. Бронирование копируется, вызывающий может его менять.
func (s *Service) Notify(event Event, booking *domain.Booking) {
	if booking == nil {
		return
	}
	snapshot := *booking

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		s.Deliver(ctx, event, &snapshot)
	}()
}

// Deliver отправляет уведомление синхронно по всем настроенным каналам
func (s *Service) Deliver(ctx context.Context, event Event, b *domain.Booking) {
	msg := Compose(event, b)

	if s.email == nil && s.sms == nil {
		s.logger.Info("Notification (log only): event=%s, booking_id=%s, to=%s, subject=%q",
			event, b.ID, b.Customer.Email, msg.Subject)
		s.count(logChannel, true)
		return
	}

	if s.email != nil {
		if b.Customer.Email != "" {
			s.sendEmail(ctx, event, b.ID, b.Customer.Email, msg.Subject, msg.Text)
		}
		if s.adminEmail != "" {
			s.sendEmail(ctx, event, b.ID, s.adminEmail, "[admin] "+msg.Subject, msg.Text)
		}
	}

	if s.sms != nil && b.Customer.Phone != "" {
		err := s.sms.SendSMS(ctx, b.Customer.Phone, msg.SMS)
		if err != nil {
			s.logger.Warn("Notification: sms failed: event=%s, booking_id=%s, error=%v", event, b.ID, err)
		}
		s.count(s.sms.Name(), err == nil)
	}
}

// Wait ждет завершения фоновых отправок или отмены ctx
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) sendEmail(ctx context.Context, event Event, bookingID, to, subject, text string) {
	err := s.email.SendEmail(ctx, to, subject, text)
	if err != nil {
		s.logger.Warn("Notification: email failed: event=%s, booking_id=%s, to=%s, error=%v", event, bookingID, to, err)
	}
	s.count(s.email.Name(), err == nil)
}

func (s *Service) count(channel string, ok bool) {
	if s.metrics != nil {
		s.metrics.IncNotification(channel, ok)
	}
}

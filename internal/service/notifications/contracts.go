package notifications

import "context"

// EmailSender канал отправки писем (SendGrid)
type EmailSender interface {
	Name() string
	SendEmail(ctx context.Context, to, subject, text string) error
}

// SMSSender канал отправки SMS (Twilio)
type SMSSender interface {
	Name() string
	SendSMS(ctx context.Context, to, body string) error
}

// Metrics счетчик доставок
type Metrics interface {
	IncNotification(channel string, ok bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

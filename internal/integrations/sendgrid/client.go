package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// mailSender часть *sendgrid.Client, которой пользуется клиент
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Client отправляет письма через SendGrid
type Client struct {
	sender mailSender
	from   *mail.Email
	log    Logger
}

// NewClient создает клиента SendGrid
func NewClient(apiKey, fromEmail, fromName string, log Logger) *Client {
	return newClient(sg.NewSendClient(apiKey), fromEmail, fromName, log)
}

func newClient(sender mailSender, fromEmail, fromName string, log Logger) *Client {
	return &Client{
		sender: sender,
		from:   mail.NewEmail(fromName, fromEmail),
		log:    log,
	}
}

// Name имя канала для метрик
func (c *Client) Name() string {
	return "sendgrid"
}

// SendEmail отправляет текстовое письмо
func (c *Client) SendEmail(ctx context.Context, to, subject, text string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrInvalidRecipient
	}

	message := mail.NewSingleEmail(c.from, subject, mail.NewEmail("", to), text, "")

	resp, err := c.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: failed to send email: %v", ErrInternal, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, resp.Body)
	}

	c.log.Info("Email sent via SendGrid: to=%s, subject=%q, status=%d", to, subject, resp.StatusCode)
	return nil
}

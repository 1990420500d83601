package twilio

import (
	"context"
	"fmt"
	"strings"

	tw "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageCreator часть Twilio API, которой пользуется клиент
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Client отправляет SMS через Twilio
type Client struct {
	api  messageCreator
	from string
	log  Logger
}

// NewClient создает клиента Twilio
func NewClient(accountSID, authToken, fromNumber string, log Logger) *Client {
	rest := tw.NewRestClientWithParams(tw.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return newClient(rest.Api, fromNumber, log)
}

func newClient(api messageCreator, fromNumber string, log Logger) *Client {
	return &Client{api: api, from: fromNumber, log: log}
}

// Name имя канала для метрик
func (c *Client) Name() string {
	return "twilio"
}

// SendSMS отправляет SMS. SDK не принимает контекст, поэтому проверяем его до вызова.
func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	to = strings.TrimSpace(to)
	if !strings.HasPrefix(to, "+") || len(to) < 8 {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.from)
	params.SetBody(body)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("%w: failed to send sms: %v", ErrInternal, err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	c.log.Info("SMS sent via Twilio: to=%s, sid=%s", to, sid)
	return nil
}

package sendgrid

import "errors"

var (
	// ErrInternal возвращается при ошибках отправки запроса
	ErrInternal = errors.New("sendgrid client: internal error")

	// ErrInvalidResponse возвращается при неуспешном статусе ответа
	ErrInvalidResponse = errors.New("sendgrid client: invalid response")

	// ErrInvalidRecipient возвращается для пустого адреса получателя
	ErrInvalidRecipient = errors.New("sendgrid client: invalid recipient")
)

package twilio

import "errors"

var (
	// ErrInternal возвращается при ошибках отправки запроса
	ErrInternal = errors.New("twilio client: internal error")

	// ErrInvalidRecipient возвращается для номера не в формате E.164
	ErrInvalidRecipient = errors.New("twilio client: invalid recipient")
)

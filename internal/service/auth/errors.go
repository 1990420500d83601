package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken возвращается для просроченного, подделанного или чужого токена
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrNotConfigured возвращается, если админ не настроен (нет хеша пароля или секрета)
	ErrNotConfigured = errors.New("auth: admin credentials are not configured")

	// ErrInternal возвращается при ошибке подписи токена
	ErrInternal = errors.New("auth: internal error")
)

package admin_login

import "github.com/m04kA/SMC-StudioBooking/internal/service/auth"

type AuthService interface {
	Login(username, password string) (*auth.Token, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

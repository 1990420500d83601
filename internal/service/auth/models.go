package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer    = "smc-studiobooking"
	roleAdmin = "admin"
)

// Config учетные данные админа
type Config struct {
	Username     string
	PasswordHash string // bcrypt
	Secret       string // ключ HS256
	TTL          time.Duration
}

// Claims полезная нагрузка админского токена
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token выданный токен
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

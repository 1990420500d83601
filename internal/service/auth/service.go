package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service выдает и проверяет админские токены
type Service struct {
	cfg    Config
	now    func() time.Time
	logger Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(cfg Config, logger Logger) *Service {
	return &Service{
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// Login проверяет логин и пароль и выдает токен
func (s *Service) Login(username, password string) (*Token, error) {
	if s.cfg.PasswordHash == "" || s.cfg.Secret == "" {
		s.logger.Error("Login: admin credentials are not configured")
		return nil, ErrNotConfigured
	}

	// Хеш сравниваем всегда, чтобы время ответа не зависело от логина
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		s.logger.Warn("Login: invalid credentials for username=%q", username)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)

	claims := Claims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.cfg.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin %q logged in, token expires at %s", s.cfg.Username, expiresAt.Format(time.RFC3339))
	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// Verify проверяет подпись, срок действия и роль токена
func (s *Service) Verify(raw string) (*Claims, error) {
	if s.cfg.Secret == "" {
		return nil, ErrNotConfigured
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Role != roleAdmin {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}

	return claims, nil
}

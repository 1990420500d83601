package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/auth"
)

const (
	msgMissingToken = "требуется авторизация администратора"
	msgInvalidToken = "недействительный токен"
)

type ctxKeyAdmin struct{}

// TokenVerifier проверка админского токена
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth пропускает только запросы с валидным "Authorization: Bearer <token>"
func AdminAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin возвращает имя админа из контекста запроса
func GetAdmin(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(ctxKeyAdmin{}).(string)
	return name, ok
}

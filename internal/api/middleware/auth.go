package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gcare-app/GCare-BookingService/internal/api/handlers"
	"github.com/gcare-app/GCare-BookingService/pkg/authtoken"
)

// Единое сообщение для всех отказов аутентификации,
// чтобы не раскрывать причину отказа
const msgUnauthorized = "authentication required"

type identityKey struct{}

// Identity аутентифицированный субъект запроса
type Identity struct {
	SubjectID int64
	Role      string
}

// TokenParser интерфейс проверки bearer-токенов
type TokenParser interface {
	Parse(tokenString string) (*authtoken.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth проверяет bearer-токен и требует указанную роль.
// Идентичность субъекта кладётся в контекст запроса.
func Auth(tokens TokenParser, role string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				logger.Warn("auth: %s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Warn("auth: %s %s - invalid token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			if claims.Role != role {
				logger.Warn("auth: %s %s - role %q is not allowed", r.Method, r.URL.Path, claims.Role)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			subjectID, err := claims.SubjectID()
			if err != nil {
				logger.Warn("auth: %s %s - malformed subject", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			identity := Identity{SubjectID: subjectID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
		})
	}
}

// IdentityFromContext возвращает аутентифицированного субъекта запроса
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// SalonID возвращает ID салона из контекста запроса
func SalonID(ctx context.Context) (int64, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.Role != authtoken.RoleSalon {
		return 0, false
	}
	return identity.SubjectID, true
}

// PartnerID возвращает ID партнёра из контекста запроса
func PartnerID(ctx context.Context) (int64, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.Role != authtoken.RolePartner {
		return 0, false
	}
	return identity.SubjectID, true
}

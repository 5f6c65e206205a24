package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/resago/booking-service/internal/api/handlers"
)

// HeaderClientID заголовок с идентификатором клиента.
// Выставляется API-гейтвеем после проверки сессии.
const HeaderClientID = "X-Client-ID"

type contextKey string

const clientIDKey contextKey = "clientID"

// Auth проверяет наличие корректного заголовка X-Client-ID и кладет
// идентификатор клиента в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderClientID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "en-tête X-Client-ID manquant")
			return
		}

		clientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || clientID <= 0 {
			handlers.RespondUnauthorized(w, "en-tête X-Client-ID invalide")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID извлекает идентификатор клиента из контекста.
// Возвращает 0, когда запрос прошел мимо Auth middleware.
func GetClientID(ctx context.Context) int64 {
	if id, ok := ctx.Value(clientIDKey).(int64); ok {
		return id
	}
	return 0
}

package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/DS-ScheduleService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет заголовок X-User-ID и кладёт ID пользователя в контекст.
// Запросы без заголовка или с некорректным значением отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext достаёт ID аутентифицированного пользователя из контекста
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
)

type contextKey string

const customerIDKey contextKey = "customerID"

const msgMissingCustomerID = "отсутствует или некорректен заголовок X-Customer-ID"

// Auth middleware аутентификации по заголовку X-Customer-ID.
// Идентификатор кладется в контекст запроса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Customer-ID")
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingCustomerID)
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CustomerIDFromContext возвращает идентификатор клиента из контекста
func CustomerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(customerIDKey).(int64)
	return id, ok
}

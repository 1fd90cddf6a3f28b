package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/moshavereh/booking-service/internal/api/handlers"
)

// Limiter интерфейс лимитера запросов
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimitLogger интерфейс для логирования
type RateLimitLogger interface {
	Warn(format string, v ...interface{})
}

// RateLimit ограничивает частоту запросов по клиенту. Ключ - ID клиента из
// контекста, для неаутентифицированных запросов - IP. При ошибке лимитера
// запрос пропускается (fail-open).
func RateLimit(limiter Limiter, logger RateLimitLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				logger.Warn("RateLimit: limiter unavailable, passing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				handlers.RespondError(w, http.StatusTooManyRequests, "превышен лимит запросов")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey определяет ключ лимитирования для запроса
func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")
		return "ip:" + strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return "ip:" + host
	}
	return "ip:" + r.RemoteAddr
}

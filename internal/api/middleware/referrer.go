// referrer.go — access gate по заголовку Referer.
// Дашборд встраивается в корпоративный портал; в production сервис
// отвечает только на запросы, пришедшие со страницы портала.
// Это не аутентификация — лишь фильтр от прямых заходов извне портала.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/hrportal/newhires/internal/api/errors"
)

// ReferrerGate возвращает middleware, пропускающий только запросы,
// чей Referer содержит portalHost. Запросы без Referer или с чужим
// Referer получают 403 с общим сообщением.
func ReferrerGate(portalHost string, logger *slog.Logger) func(http.Handler) http.Handler {
	gateLogger := logger.With(slog.String("component", "referrer_gate"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			referer := r.Header.Get("Referer")
			if referer == "" || !strings.Contains(referer, portalHost) {
				gateLogger.Warn("Запрос отклонён access gate",
					slog.String("path", r.URL.Path),
					slog.String("referer", referer),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Forbidden(w, "Доступ только со страницы корпоративного портала")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

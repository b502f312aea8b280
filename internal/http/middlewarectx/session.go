// Package middlewarectx содержит HTTP middleware приложения: сессии
// посетителей и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/horseclub-web/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// VisitorKey ключ сессии посетителя в контексте.
const VisitorKey Key = "visitor"

// SessionStore источник сессий.
type SessionStore interface {
	Acquire(id string) (*session.Visitor, bool)
}

// SessionMiddleware находит сессию по cookie или заводит новую
// и кладёт её в контекст запроса.
func SessionMiddleware(log *slog.Logger, store SessionStore, cookieName string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cookieName); err == nil {
				id = c.Value
			}

			v, created := store.Acquire(id)
			if created {
				log.Debug("new visitor session",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("session", v.ID),
				)
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    v.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), VisitorKey, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Visitor достаёт сессию посетителя из контекста.
func Visitor(ctx context.Context) (*session.Visitor, bool) {
	v, ok := ctx.Value(VisitorKey).(*session.Visitor)
	return v, ok && v != nil
}

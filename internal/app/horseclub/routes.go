// Package horseclub собирает приложение: маршруты, сессии, клиент API клуба и HTTP-сервер.
package horseclub

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/horseclub-web/internal/clubapi"
	"github.com/magabrotheeeer/horseclub-web/internal/config"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/afexam"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/filters"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/health"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/home"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/menu"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/movies"
	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/newslist"
	"github.com/magabrotheeeer/horseclub-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, api *clubapi.Client, rd *web.Renderer, sessions *session.Store, shuffle widgets.Shuffler) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	homeHandler := home.New(logger, rd, api, shuffle)
	moviesHandler := movies.New(logger, rd)
	newsHandler := newslist.New(logger, rd, api)
	filtersHandler := filters.New(logger, rd, api)
	afexamHandler := afexam.New(logger, rd, api, cfg.Author, cfg.Group)
	menuHandler := menu.New(logger, rd, map[string]http.HandlerFunc{
		web.PageHome:    homeHandler.Show,
		web.PageMovies:  moviesHandler.Show,
		web.PageNews:    newsHandler.Show,
		web.PageFilters: filtersHandler.Show,
		web.PageAfExam:  afexamHandler.Show,
	})

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(logger, sessions, cfg.CookieName, cfg.SessionTTL))

		// Монтирование страниц
		r.Get("/", homeHandler.Mount)
		r.Get("/movies", moviesHandler.Mount)
		r.Get("/news", newsHandler.Mount)
		r.Get("/news/{id}/delete", newsHandler.ConfirmDelete)
		r.Get("/filters", filtersHandler.Mount)
		r.Get("/afexam", afexamHandler.ServeHTTP)

		// События компонентов
		r.Post("/widgets/news/back", homeHandler.CloseDetail)
		r.Post("/widgets/news/{id}", homeHandler.OpenDetail)
		r.Post("/widgets/news/{id}/favorite", homeHandler.ToggleFavorite)
		r.Post("/movies/{id}/favorite", moviesHandler.ToggleFavorite)

		r.Post("/news/form", newsHandler.OpenCreate)
		r.Post("/news/form/cancel", newsHandler.Cancel)
		r.Post("/news/{id}/edit", newsHandler.OpenEdit)

		r.Post("/filters/tab", filtersHandler.SetTab)
		r.Post("/filters/{resource}", filtersHandler.Change)
		r.Post("/filters/{resource}/clear", filtersHandler.Clear)

		r.Post("/menu/toggle", menuHandler.ServeHTTP)

		// Изменения данных в API
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst))

			r.Post("/news/submit", newsHandler.Submit)
			r.Post("/news/{id}/delete", newsHandler.Delete)
		})
	})

	r.Get("/health", health.New(logger, sessions).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}

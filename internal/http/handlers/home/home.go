// Package home обработчики главной страницы и её виджетов.
//
// GET монтирует новый экземпляр главной в сессии посетителя, POST-события
// действуют на уже смонтированный экземпляр и перерисовывают страницу.
package home

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/shell"
	"github.com/magabrotheeeer/horseclub-web/internal/pages"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

// Handler обработчики главной.
type Handler struct {
	log     *slog.Logger
	rd      *web.Renderer
	api     pages.HomeAPI
	shuffle widgets.Shuffler
}

// New создаёт обработчики. shuffle может быть nil.
func New(log *slog.Logger, rd *web.Renderer, api pages.HomeAPI, shuffle widgets.Shuffler) *Handler {
	return &Handler{
		log:     log,
		rd:      rd,
		api:     api,
		shuffle: shuffle,
	}
}

func (h *Handler) mount(ctx context.Context, v *session.Visitor) *pages.Home {
	home := pages.NewHome(h.api, h.log, h.shuffle)
	home.Mount(ctx)
	v.SetHome(home)
	return home
}

func (h *Handler) current(ctx context.Context, v *session.Visitor) *pages.Home {
	if home := v.Home(); home != nil {
		return home
	}
	return h.mount(ctx, v)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *session.Visitor, home *pages.Home) {
	shell.Respond(w, r, log, h.rd, http.StatusOK, shell.Page(v, web.PageHome, "Главная", home.State()))
}

func (h *Handler) logger(op string, r *http.Request) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Mount GET / монтирует главную заново: новости, тренеры и лошади
// запрашиваются снова, избранное сбрасывается.
func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home.Mount"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	v.CloseMenu()
	home := h.mount(r.Context(), v)
	log.Info("home mounted")
	h.respond(w, r, log, v, home)
}

// Show перерисовывает текущее состояние главной без перезагрузки.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home.Show"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	h.respond(w, r, log, v, h.current(r.Context(), v))
}

// OpenDetail POST /widgets/news/{id} раскрывает новость в виджете.
func (h *Handler) OpenDetail(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home.OpenDetail"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	id, ok := shell.ID(w, r, log, h.rd)
	if !ok {
		return
	}
	home := h.current(r.Context(), v)
	home.News.OpenDetail(r.Context(), id)
	h.respond(w, r, log, v, home)
}

// CloseDetail POST /widgets/news/back возвращает список новостей.
func (h *Handler) CloseDetail(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home.CloseDetail"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	home := h.current(r.Context(), v)
	home.News.CloseDetail()
	h.respond(w, r, log, v, home)
}

// ToggleFavorite POST /widgets/news/{id}/favorite.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home.ToggleFavorite"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	id, ok := shell.ID(w, r, log, h.rd)
	if !ok {
		return
	}
	home := h.current(r.Context(), v)
	fav := home.News.ToggleFavorite(id)
	log.Debug("news favorite toggled", slog.Int("id", id), slog.Bool("favorite", fav))
	h.respond(w, r, log, v, home)
}

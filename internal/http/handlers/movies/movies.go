// Package movies обработчики виджета премьер.
package movies

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/shell"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

type Handler struct {
	log *slog.Logger
	rd  *web.Renderer
}

func New(log *slog.Logger, rd *web.Renderer) *Handler {
	return &Handler{
		log: log,
		rd:  rd,
	}
}

func current(v *session.Visitor) *widgets.Movies {
	if m := v.Movies(); m != nil {
		return m
	}
	m := widgets.NewMovies()
	v.SetMovies(m)
	return m
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *session.Visitor, m *widgets.Movies) {
	shell.Respond(w, r, log, h.rd, http.StatusOK, shell.Page(v, web.PageMovies, "Премьеры", m.State()))
}

// Mount GET /movies. Новый экземпляр: избранное сбрасывается.
func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movies.Mount"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	v.CloseMenu()
	m := widgets.NewMovies()
	v.SetMovies(m)
	h.respond(w, r, log, v, m)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movies.Show"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	h.respond(w, r, log, v, current(v))
}

// ToggleFavorite POST /movies/{id}/favorite.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movies.ToggleFavorite"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	id, ok := shell.ID(w, r, log, h.rd)
	if !ok {
		return
	}
	m := current(v)
	m.ToggleFavorite(id)
	h.respond(w, r, log, v, m)
}

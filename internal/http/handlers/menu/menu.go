// Package menu обработчик бургер-меню оболочки.
package menu

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/shell"
	"github.com/magabrotheeeer/horseclub-web/internal/http/response"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
)

// Handler переключает меню и перерисовывает страницу, с которой пришёл запрос,
// не монтируя её заново.
type Handler struct {
	log   *slog.Logger
	rd    *web.Renderer
	views map[string]http.HandlerFunc
}

// New создаёт обработчик. views сопоставляет имя страницы и её перерисовку.
func New(log *slog.Logger, rd *web.Renderer, views map[string]http.HandlerFunc) *Handler {
	return &Handler{
		log:   log,
		rd:    rd,
		views: views,
	}
}

// ServeHTTP POST /menu/toggle.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.Toggle"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	open := v.ToggleMenu()
	log.Debug("menu toggled", slog.Bool("open", open))

	if web.WantsJSON(r) {
		render.JSON(w, r, response.OKWithData(map[string]bool{"menu_open": open}))
		return
	}

	show, ok := h.views[r.FormValue("page")]
	if !ok {
		show, ok = h.views[web.PageHome]
	}
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	show(w, r)
}

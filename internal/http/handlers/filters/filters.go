// Package filters обработчики страницы демонстрации фильтров.
package filters

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/shell"
	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/pages"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
)

// Handler управляет вкладками и фильтрами посетителя.
type Handler struct {
	log *slog.Logger
	rd  *web.Renderer
	api pages.FilterAPI
}

// New создаёт обработчики страницы фильтров.
func New(log *slog.Logger, rd *web.Renderer, api pages.FilterAPI) *Handler {
	return &Handler{
		log: log,
		rd:  rd,
		api: api,
	}
}

func (h *Handler) logger(op string, r *http.Request) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) mount(ctx context.Context, v *session.Visitor) *pages.FilterDemo {
	demo := pages.NewFilterDemo(h.api, h.log)
	demo.Mount(ctx)
	v.SetFilterDemo(demo)
	return demo
}

func (h *Handler) current(ctx context.Context, v *session.Visitor) *pages.FilterDemo {
	if demo := v.FilterDemo(); demo != nil {
		return demo
	}
	return h.mount(ctx, v)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, v *session.Visitor, demo *pages.FilterDemo) {
	shell.Respond(w, r, log, h.rd, http.StatusOK, shell.Page(v, web.PageFilters, "Фильтры", demo.State()))
}

func (h *Handler) resource(w http.ResponseWriter, r *http.Request, log *slog.Logger) (pages.Tab, bool) {
	raw := chi.URLParam(r, "resource")
	tab, err := pages.ParseTab(raw)
	if err != nil {
		log.Error("unknown filter resource", slog.String("resource", raw), sl.Err(err))
		h.rd.Error(w, r, http.StatusNotFound, "unknown resource")
		return "", false
	}
	return tab, true
}

// Mount GET /filters загружает все три списка с пустыми фильтрами.
func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.filters.Mount"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	v.CloseMenu()
	h.respond(w, r, log, v, h.mount(r.Context(), v))
}

// Show перерисовывает текущую вкладку.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.filters.Show"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	h.respond(w, r, log, v, h.current(r.Context(), v))
}

// SetTab POST /filters/tab переключает вкладку без запроса к API.
func (h *Handler) SetTab(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.filters.SetTab"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	tab, err := pages.ParseTab(r.FormValue("tab"))
	if err != nil {
		log.Error("invalid tab", sl.Err(err))
		h.rd.Error(w, r, http.StatusBadRequest, "unknown tab")
		return
	}
	demo := h.current(r.Context(), v)
	demo.SetTab(tab)
	h.respond(w, r, log, v, demo)
}

// Change POST /filters/{resource}. Пара field/value меняет одно поле,
// иначе форма заменяет фильтр ресурса целиком. Запрашивается только этот ресурс.
func (h *Handler) Change(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.filters.Change"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	tab, ok := h.resource(w, r, log)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.rd.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	demo := h.current(r.Context(), v)
	var err error
	if r.Form.Has("field") {
		err = demo.Change(r.Context(), tab, r.Form.Get("field"), r.Form.Get("value"))
	} else {
		err = demo.Apply(r.Context(), tab, r.PostForm)
	}
	if errors.Is(err, pages.ErrUnknownField) {
		log.Error("filter change rejected", sl.Err(err))
		h.rd.Error(w, r, http.StatusUnprocessableEntity, "unknown filter field")
		return
	}
	if err != nil {
		log.Error("filter change failed", sl.Err(err))
		h.rd.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	demo.SetTab(tab)
	log.Info("filter changed", slog.String("tab", string(tab)), slog.String("query", demo.Filters(tab).Encode()))
	h.respond(w, r, log, v, demo)
}

// Clear POST /filters/{resource}/clear сбрасывает фильтр и перезапрашивает ресурс.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.filters.Clear"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	tab, ok := h.resource(w, r, log)
	if !ok {
		return
	}
	demo := h.current(r.Context(), v)
	demo.Clear(r.Context(), tab)
	demo.SetTab(tab)
	h.respond(w, r, log, v, demo)
}

// Package afexam обработчики страницы публичных экзаменов.
package afexam

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/shell"
	"github.com/magabrotheeeer/horseclub-web/internal/pages"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
)

type Handler struct {
	log    *slog.Logger
	rd     *web.Renderer
	api    pages.ExamsAPI
	author string
	group  string
}

func New(log *slog.Logger, rd *web.Renderer, api pages.ExamsAPI, author, group string) *Handler {
	return &Handler{
		log:    log,
		rd:     rd,
		api:    api,
		author: author,
		group:  group,
	}
}

// ServeHTTP GET /afexam монтирует страницу и загружает экзамены.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.afexam"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	v.CloseMenu()
	page := pages.NewAfExam(h.api, h.log, h.author, h.group)
	page.Mount(r.Context())
	v.SetAfExam(page)
	shell.Respond(w, r, log, h.rd, http.StatusOK, shell.Page(v, web.PageAfExam, "Экзамены", page.State()))
}

// Show перерисовывает страницу без повторного запроса, если она уже смонтирована.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.afexam.Show"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	page := v.AfExam()
	if page == nil {
		page = pages.NewAfExam(h.api, h.log, h.author, h.group)
		page.Mount(r.Context())
		v.SetAfExam(page)
	}
	shell.Respond(w, r, log, h.rd, http.StatusOK, shell.Page(v, web.PageAfExam, "Экзамены", page.State()))
}

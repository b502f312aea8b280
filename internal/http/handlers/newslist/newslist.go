// Package newslist реализует HTTP-обработчики страницы всех новостей:
// монтирование списка, форма создания и редактирования, удаление с подтверждением.
//
// Форма отправляется как multipart/form-data (браузер) или JSON (API-клиенты).
// Ошибки валидации отдаются со статусом 422, ошибки API клуба со статусом 502.
package newslist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/horseclub-web/internal/http/handlers/shell"
	"github.com/magabrotheeeer/horseclub-web/internal/http/response"
	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/pages"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
)

// maxUploadSize предел тела формы с изображением.
const maxUploadSize = 10 << 20

// DeleteConfirm данные страницы подтверждения удаления.
type DeleteConfirm struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Handler управляет страницей новостей посетителя.
type Handler struct {
	log *slog.Logger
	rd  *web.Renderer
	api pages.NewsAPI
}

// New создаёт обработчики страницы новостей.
func New(log *slog.Logger, rd *web.Renderer, api pages.NewsAPI) *Handler {
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

func (h *Handler) mount(ctx context.Context, v *session.Visitor) *pages.NewsList {
	page := pages.NewNewsList(h.api, h.log)
	page.Mount(ctx)
	v.SetNewsList(page)
	return page
}

func (h *Handler) current(ctx context.Context, v *session.Visitor) *pages.NewsList {
	if page := v.NewsList(); page != nil {
		return page
	}
	return h.mount(ctx, v)
}

func (h *Handler) page(v *session.Visitor, page *pages.NewsList) web.Page {
	return shell.Page(v, web.PageNews, "Новости", page.State())
}

// Mount GET /news загружает весь список заново.
func (h *Handler) Mount(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.Mount"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	v.CloseMenu()
	page := h.mount(r.Context(), v)
	shell.Respond(w, r, log, h.rd, http.StatusOK, h.page(v, page))
}

// Show перерисовывает текущее состояние страницы.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.Show"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	shell.Respond(w, r, log, h.rd, http.StatusOK, h.page(v, h.current(r.Context(), v)))
}

// OpenCreate POST /news/form показывает пустую форму.
func (h *Handler) OpenCreate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.OpenCreate"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	page := h.current(r.Context(), v)
	page.OpenCreate()
	shell.Respond(w, r, log, h.rd, http.StatusOK, h.page(v, page))
}

// OpenEdit POST /news/{id}/edit заполняет форму из новости списка.
func (h *Handler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.OpenEdit"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	id, ok := shell.ID(w, r, log, h.rd)
	if !ok {
		return
	}
	page := h.current(r.Context(), v)
	if err := page.OpenEdit(id); err != nil {
		log.Error("news is not in the list", slog.Int("id", id), sl.Err(err))
		h.rd.Error(w, r, http.StatusNotFound, "news not found")
		return
	}
	shell.Respond(w, r, log, h.rd, http.StatusOK, h.page(v, page))
}

// Cancel POST /news/form/cancel прячет форму.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.Cancel"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	page := h.current(r.Context(), v)
	page.Cancel()
	shell.Respond(w, r, log, h.rd, http.StatusOK, h.page(v, page))
}

// Submit POST /news/submit отправляет форму в API клуба:
// создание или изменение в зависимости от режима формы.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.Submit"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}

	form, cleanup, err := decodeForm(r)
	if err != nil {
		log.Error("failed to decode news form", sl.Err(err))
		h.rd.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	defer cleanup()
	log.Info("news form decoded", slog.String("title", form.Title), slog.Bool("image", form.Image != nil))

	page := h.current(r.Context(), v)
	notice, err := page.Submit(r.Context(), form)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		if web.WantsJSON(r) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		p := h.page(v, page)
		p.Error = notice
		shell.Respond(w, r, log, h.rd, http.StatusUnprocessableEntity, p)
	case err != nil:
		p := h.page(v, page)
		p.Error = notice
		shell.Respond(w, r, log, h.rd, http.StatusBadGateway, p)
	default:
		p := h.page(v, page)
		p.Notice = notice
		shell.Respond(w, r, log, h.rd, http.StatusOK, p)
	}
}

// ConfirmDelete GET /news/{id}/delete спрашивает подтверждение.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.ConfirmDelete"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	id, ok := shell.ID(w, r, log, h.rd)
	if !ok {
		return
	}

	confirm := DeleteConfirm{ID: id}
	items := h.current(r.Context(), v).State().Items
	if idx := slices.IndexFunc(items, func(n models.NewsItem) bool { return n.ID == id }); idx >= 0 {
		confirm.Title = items[idx].Title
	}
	shell.Respond(w, r, log, h.rd, http.StatusOK, shell.Page(v, web.PageNewsDelete, "Удаление новости", confirm))
}

// Delete POST /news/{id}/delete. Без confirm=yes запрос в API не уходит.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.newslist.Delete"
	log := h.logger(op, r)

	v, ok := shell.Visitor(w, r, log, h.rd)
	if !ok {
		return
	}
	id, ok := shell.ID(w, r, log, h.rd)
	if !ok {
		return
	}

	confirmed := r.FormValue("confirm") == "yes"
	page := h.current(r.Context(), v)
	deleted, err := page.Delete(r.Context(), id, confirmed)
	if err != nil {
		p := h.page(v, page)
		p.Error = pages.NoticeFailed
		shell.Respond(w, r, log, h.rd, http.StatusBadGateway, p)
		return
	}
	log.Info("delete handled", slog.Int("id", id), slog.Bool("confirmed", confirmed), slog.Bool("deleted", deleted))
	shell.Respond(w, r, log, h.rd, http.StatusOK, h.page(v, page))
}

// decodeForm читает форму новости из JSON или multipart/form-data.
// cleanup закрывает загруженный файл.
func decodeForm(r *http.Request) (models.NewsForm, func(), error) {
	noop := func() {}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		form := models.EmptyNewsForm()
		if err := render.DecodeJSON(r.Body, &form); err != nil {
			return models.NewsForm{}, noop, err
		}
		return form, noop, nil
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.NewsForm{}, noop, err
	}

	form := models.NewsForm{
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		PublishedAt: r.FormValue("published_at"),
		IsActive:    parseCheckbox(r.FormValue("is_active")),
	}

	if r.MultipartForm == nil {
		return form, noop, nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return form, noop, nil
	}
	if err != nil {
		return models.NewsForm{}, noop, err
	}
	form.Image = &models.Image{Filename: header.Filename, Body: file}
	return form, func() { _ = file.Close() }, nil
}

// parseCheckbox понимает значения чекбокса: "on" по умолчанию у браузера и булевы строки.
func parseCheckbox(s string) bool {
	if s == "on" {
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

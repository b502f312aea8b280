// Package shell общие части обработчиков страниц: сессия посетителя,
// оболочка страницы и отрисовка ответа.
package shell

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/horseclub-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/session"
	"github.com/magabrotheeeer/horseclub-web/internal/web"
)

// Visitor достаёт сессию посетителя. Если её нет, отвечает ошибкой и возвращает false.
func Visitor(w http.ResponseWriter, r *http.Request, log *slog.Logger, rd *web.Renderer) (*session.Visitor, bool) {
	v, ok := middlewarectx.Visitor(r.Context())
	if !ok {
		log.Error("visitor session missing in context")
		rd.Error(w, r, http.StatusInternalServerError, "session is not available")
		return nil, false
	}
	return v, true
}

// ID разбирает параметр маршрута {id}. При ошибке отвечает 400.
func ID(w http.ResponseWriter, r *http.Request, log *slog.Logger, rd *web.Renderer) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		log.Error("invalid id", slog.String("id", raw))
		rd.Error(w, r, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// Page оборачивает данные компонента в оболочку с состоянием меню посетителя.
func Page(v *session.Visitor, name, title string, data any) web.Page {
	return web.Page{
		Name:     name,
		Title:    title,
		MenuOpen: v.MenuOpen(),
		Data:     data,
	}
}

// Respond отрисовывает страницу. Ошибка шаблона логируется и превращается в 500.
func Respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, rd *web.Renderer, status int, p web.Page) {
	if err := rd.Respond(w, r, status, p); err != nil {
		log.Error("failed to render page", slog.String("page", p.Name), sl.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

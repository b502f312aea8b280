// Package web отрисовывает состояние компонентов: HTML через html/template
// или JSON-снимок, если клиент принимает application/json.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/horseclub-web/internal/http/response"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/sanitize"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Страницы приложения. Каждая собирается из layout, общих виджетов и своего шаблона.
const (
	PageHome       = "home"
	PageMovies     = "movies"
	PageNews       = "news"
	PageNewsDelete = "news_delete"
	PageFilters    = "filters"
	PageAfExam     = "afexam"
	PageError      = "error"
)

var pageNames = []string{PageHome, PageMovies, PageNews, PageNewsDelete, PageFilters, PageAfExam, PageError}

// Page данные для отрисовки страницы в оболочке.
type Page struct {
	Name     string
	Title    string
	MenuOpen bool
	Notice   string
	Error    string
	Data     any
}

// Renderer набор разобранных шаблонов страниц.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date":       formatDateTime,
	"day":        formatDay,
	"sanitize":   sanitize.HTML,
	"fieldLabel": fieldLabel,
}

// New разбирает встроенные шаблоны.
func New() (*Renderer, error) {
	const op = "web.New"
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/widgets.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// HTML отрисовывает страницу в w.
func (rd *Renderer) HTML(w io.Writer, p Page) error {
	t, ok := rd.pages[p.Name]
	if !ok {
		return fmt.Errorf("web.HTML: unknown page %q", p.Name)
	}
	return t.ExecuteTemplate(w, "layout", p)
}

// WantsJSON сообщает, что клиент просит JSON вместо HTML.
// Решает первый распознанный тип из Accept, по умолчанию HTML.
func WantsJSON(r *http.Request) bool {
	for _, field := range strings.Split(r.Header.Get("Accept"), ",") {
		switch render.GetContentType(field) {
		case render.ContentTypeJSON:
			return true
		case render.ContentTypeHTML:
			return false
		}
	}
	return false
}

// Respond отвечает страницей или JSON-снимком её данных со статусом status.
func (rd *Renderer) Respond(w http.ResponseWriter, r *http.Request, status int, p Page) error {
	if WantsJSON(r) {
		resp := response.OKWithData(p.Data)
		if p.Error != "" {
			resp.Status = response.StatusError
			resp.Error = p.Error
		}
		render.Status(r, status)
		render.JSON(w, r, resp)
		return nil
	}

	var buf bytes.Buffer
	if err := rd.HTML(&buf, p); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Error отвечает ошибкой без данных компонента.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if WantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, response.Error(msg))
		return
	}
	if err := rd.Respond(w, r, status, Page{Name: PageError, Title: "Ошибка", Error: msg}); err != nil {
		http.Error(w, msg, status)
	}
}

func formatDay(ts models.Timestamp) string {
	if !ts.Parsed() {
		return ts.Raw
	}
	return widgets.FormatDateRU(ts.Format(time.DateOnly))
}

func formatDateTime(ts *models.Timestamp) string {
	switch {
	case ts == nil || (ts.Raw == "" && !ts.Parsed()):
		return "Дата не указана"
	case !ts.Parsed():
		return ts.Raw
	}
	return fmt.Sprintf("%s, %s", formatDay(*ts), ts.Format("15:04"))
}

var fieldLabels = map[string]string{
	"title":            "Заголовок",
	"is_active":        "Статус",
	"published_after":  "Опубликована после",
	"published_before": "Опубликована до",
	"name":             "Имя",
	"experience_min":   "Стаж от",
	"experience_max":   "Стаж до",
	"gender":           "Пол",
	"description":      "Описание",
}

func fieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

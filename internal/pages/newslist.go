// Package pages страницы интерфейса: список новостей с формой, экзамены,
// демонстрация фильтров и главная.
package pages

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/horseclub-web/internal/clubapi"
	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/sanitize"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

// Уведомления формы новостей.
const (
	NoticeCreated = "Новость создана!"
	NoticeUpdated = "Новость обновлена!"
	NoticeFailed  = "Ошибка."
)

// ErrNotListed новость для редактирования не найдена в текущем списке.
var ErrNotListed = errors.New("news item is not listed")

// NewsAPI операции API, нужные странице новостей.
type NewsAPI interface {
	ListNews(ctx context.Context, q filter.State) ([]models.NewsItem, error)
	CreateNews(ctx context.Context, form models.NewsForm) error
	UpdateNews(ctx context.Context, id int, form models.NewsForm) error
	DeleteNews(ctx context.Context, id int) error
}

// FormState состояние формы новости.
type FormState struct {
	Show     bool            `json:"show"`
	EditMode bool            `json:"edit_mode"`
	EditID   int             `json:"edit_id,omitempty"`
	Fields   models.NewsForm `json:"fields"`
}

// NewsListState снимок страницы новостей.
type NewsListState struct {
	Loading bool              `json:"loading"`
	Items   []models.NewsItem `json:"items"`
	Form    FormState         `json:"form"`
}

// NewsList страница всех новостей с формой создания и редактирования.
type NewsList struct {
	api      NewsAPI
	log      *slog.Logger
	list     *view.List[models.NewsItem]
	validate *validator.Validate

	mu   sync.Mutex
	form FormState
}

// NewNewsList создаёт страницу. Список загружается в Mount.
func NewNewsList(api NewsAPI, log *slog.Logger) *NewsList {
	log = log.With(slog.String("page", "news"))
	return &NewsList{
		api:      api,
		log:      log,
		list:     view.NewList(log, widgets.SortByPublishedDesc),
		validate: validator.New(),
		form:     FormState{Fields: models.EmptyNewsForm()},
	}
}

// Mount загружает весь список новостей от свежих к старым.
func (p *NewsList) Mount(ctx context.Context) {
	p.list.Load(ctx, func(ctx context.Context) ([]models.NewsItem, error) {
		return p.api.ListNews(ctx, filter.State{})
	})
}

// OpenCreate показывает пустую форму создания.
func (p *NewsList) OpenCreate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = FormState{Show: true, Fields: models.EmptyNewsForm()}
}

// OpenEdit заполняет форму из новости списка и включает режим редактирования.
func (p *NewsList) OpenEdit(id int) error {
	items := p.list.Items()
	idx := slices.IndexFunc(items, func(n models.NewsItem) bool { return n.ID == id })
	if idx < 0 {
		return ErrNotListed
	}
	item := items[idx]

	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = FormState{
		Show:     true,
		EditMode: true,
		EditID:   item.ID,
		Fields:   models.NewsFormFrom(item),
	}
	return nil
}

// Cancel прячет форму и выходит из режима редактирования.
func (p *NewsList) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Show = false
	p.form.EditMode = false
}

// Submit отправляет форму: POST в режиме создания, PUT в режиме редактирования.
// При успехе форма сбрасывается и список перезагружается целиком.
// Возвращает текст уведомления для пользователя.
func (p *NewsList) Submit(ctx context.Context, fields models.NewsForm) (string, error) {
	const op = "pages.NewsList.Submit"
	log := p.log.With(slog.String("op", op))

	// Файл изображения живёт только в рамках запроса, в форме его не храним.
	kept := fields
	kept.Image = nil

	p.mu.Lock()
	editMode, editID := p.form.EditMode, p.form.EditID
	p.form.Fields = kept
	p.mu.Unlock()

	if err := p.validate.Struct(fields); err != nil {
		log.Error("validation failed", sl.Err(err))
		return NoticeFailed, err
	}

	var err error
	if editMode {
		err = p.api.UpdateNews(ctx, editID, fields)
	} else {
		err = p.api.CreateNews(ctx, fields)
	}
	if err != nil {
		log.Error("failed to save news", slog.Bool("edit", editMode), sl.Err(err))
		return NoticeFailed, err
	}

	notice := NoticeCreated
	if editMode {
		notice = NoticeUpdated
	}
	log.Info("news saved", slog.Bool("edit", editMode), slog.Int("id", editID))

	p.mu.Lock()
	p.form = FormState{Fields: models.EmptyNewsForm()}
	p.mu.Unlock()

	p.Mount(ctx)
	return notice, nil
}

// Delete удаляет новость после подтверждения. Без подтверждения запрос не уходит.
// После ответа API новость убирается из локального списка без перезагрузки.
func (p *NewsList) Delete(ctx context.Context, id int, confirmed bool) (bool, error) {
	const op = "pages.NewsList.Delete"
	if !confirmed {
		return false, nil
	}
	log := p.log.With(slog.String("op", op), slog.Int("id", id))

	err := p.api.DeleteNews(ctx, id)
	if err != nil && !errors.Is(err, clubapi.ErrUnexpectedStatus) {
		log.Error("failed to delete news", sl.Err(err))
		return false, err
	}
	if err != nil {
		log.Warn("club api rejected delete, removing locally anyway", sl.Err(err))
	}

	p.list.Update(func(items []models.NewsItem) []models.NewsItem {
		return slices.DeleteFunc(items, func(n models.NewsItem) bool { return n.ID == id })
	})
	return true, nil
}

// State снимок для отрисовки.
func (p *NewsList) State() NewsListState {
	snap := p.list.Snapshot()
	p.mu.Lock()
	defer p.mu.Unlock()
	return NewsListState{
		Loading: snap.Loading,
		Items:   sanitize.NewsItems(snap.Items),
		Form:    p.form,
	}
}

package widgets

import (
	"context"
	"html/template"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/sanitize"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
)

// Mode ветка отрисовки компонента. Ветки взаимоисключающие.
type Mode string

const (
	ModeLoading Mode = "loading"
	ModeList    Mode = "list"
	ModeDetail  Mode = "detail"
)

// NewsEntry строка списка новостей виджета.
type NewsEntry struct {
	models.NewsItem
	Favorite bool `json:"favorite"`
}

// NewsDetail раскрытая новость. Content уже очищен.
type NewsDetail struct {
	models.NewsItem
	Body template.HTML `json:"-"`
}

// NewsState состояние виджета новостей для отрисовки.
type NewsState struct {
	Mode     Mode        `json:"mode"`
	Items    []NewsEntry `json:"items"`
	Selected *NewsDetail `json:"selected,omitempty"`
}

// News виджет последних новостей с раскрытием одной новости вместо списка.
// Список и детальная загрузка делят один флаг загрузки.
type News struct {
	api NewsSource
	log *slog.Logger

	fence     view.Fence
	favorites view.Favorites

	mu       sync.RWMutex
	items    []models.NewsItem
	selected *models.NewsItem
}

// NewNews создаёт виджет. Загрузка начинается в Mount.
func NewNews(api NewsSource, log *slog.Logger) *News {
	return &News{
		api:   api,
		log:   log,
		items: []models.NewsItem{},
	}
}

// Mount загружает список и оставляет NewsLimit самых свежих.
func (w *News) Mount(ctx context.Context) {
	const op = "widgets.News.Mount"
	log := w.log.With(slog.String("op", op))

	tok := w.fence.Begin()
	items, err := w.api.ListNews(ctx, filter.State{})
	if err != nil {
		log.Error("error fetching news", sl.Err(err))
		w.fence.Settle(tok, nil)
		return
	}
	latest := LatestNews(items, NewsLimit)
	if !w.fence.Settle(tok, func() {
		w.mu.Lock()
		w.items = latest
		w.mu.Unlock()
	}) {
		log.Debug("stale news list discarded", sl.Seq(uint64(tok)))
	}
}

// OpenDetail загружает новость и переключает виджет на детальный вид.
// При ошибке остаётся список.
func (w *News) OpenDetail(ctx context.Context, id int) {
	const op = "widgets.News.OpenDetail"
	log := w.log.With(slog.String("op", op), slog.Int("id", id))

	tok := w.fence.Begin()
	item, err := w.api.News(ctx, id)
	if err != nil {
		log.Error("error fetching news detail", sl.Err(err))
		w.fence.Settle(tok, nil)
		return
	}
	if !w.fence.Settle(tok, func() {
		w.mu.Lock()
		w.selected = item
		w.mu.Unlock()
	}) {
		log.Debug("stale news detail discarded", sl.Seq(uint64(tok)))
	}
}

// CloseDetail возвращает список.
func (w *News) CloseDetail() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = nil
}

// ToggleFavorite отмечает новость в избранном экземпляра.
func (w *News) ToggleFavorite(id int) bool {
	return w.favorites.Toggle(id)
}

// State снимок для отрисовки.
func (w *News) State() NewsState {
	if w.fence.Loading() {
		return NewsState{Mode: ModeLoading, Items: []NewsEntry{}}
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.selected != nil {
		detail := NewsDetail{NewsItem: *w.selected, Body: sanitize.HTML(w.selected.Content)}
		detail.Content = string(detail.Body)
		return NewsState{Mode: ModeDetail, Items: []NewsEntry{}, Selected: &detail}
	}

	entries := make([]NewsEntry, len(w.items))
	for i, item := range w.items {
		entries[i] = NewsEntry{NewsItem: sanitize.News(item), Favorite: w.favorites.Has(item.ID)}
	}
	return NewsState{Mode: ModeList, Items: entries}
}

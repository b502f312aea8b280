package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/sanitize"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
)

// Tab вкладка демонстрации фильтров.
type Tab string

const (
	TabNews     Tab = "news"
	TabTrainers Tab = "trainers"
	TabHorses   Tab = "horses"
)

var (
	// ErrUnknownTab вкладки с таким именем нет.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrUnknownField у фильтра вкладки нет такого поля.
	ErrUnknownField = errors.New("unknown filter field")
)

// ParseTab проверяет имя вкладки.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabNews, TabTrainers, TabHorses:
		return Tab(s), nil
	}
	return "", ErrUnknownTab
}

// FilterAPI списки с фильтрами.
type FilterAPI interface {
	ListNews(ctx context.Context, q filter.State) ([]models.NewsItem, error)
	ListTrainers(ctx context.Context, q filter.State) ([]models.Trainer, error)
	ListHorses(ctx context.Context, q filter.State) ([]models.Horse, error)
}

// FilterDemoState снимок страницы фильтров. Заполнен только список активной вкладки.
type FilterDemoState struct {
	Tab      Tab               `json:"tab"`
	Filters  filter.State      `json:"filters"`
	Loading  bool              `json:"loading"`
	News     []models.NewsItem `json:"news,omitempty"`
	Trainers []models.Trainer  `json:"trainers,omitempty"`
	Horses   []models.Horse    `json:"horses,omitempty"`
}

// FilterDemo три независимых фильтра. Любое изменение фильтра заменяет
// его объект целиком и сразу запрашивает только этот ресурс.
type FilterDemo struct {
	api FilterAPI

	news     *view.List[models.NewsItem]
	trainers *view.List[models.Trainer]
	horses   *view.List[models.Horse]

	mu      sync.Mutex
	tab     Tab
	filters map[Tab]filter.State
}

// NewFilterDemo создаёт страницу с пустыми фильтрами на вкладке новостей.
func NewFilterDemo(api FilterAPI, log *slog.Logger) *FilterDemo {
	log = log.With(slog.String("page", "filters"))
	return &FilterDemo{
		api:      api,
		news:     view.NewList[models.NewsItem](log.With(slog.String("tab", string(TabNews))), nil),
		trainers: view.NewList[models.Trainer](log.With(slog.String("tab", string(TabTrainers))), nil),
		horses:   view.NewList[models.Horse](log.With(slog.String("tab", string(TabHorses))), nil),
		tab:      TabNews,
		filters: map[Tab]filter.State{
			TabNews:     filter.News(),
			TabTrainers: filter.Trainers(),
			TabHorses:   filter.Horses(),
		},
	}
}

// Mount загружает все три списка с текущими фильтрами.
func (p *FilterDemo) Mount(ctx context.Context) {
	for _, tab := range []Tab{TabNews, TabTrainers, TabHorses} {
		p.fetch(ctx, tab)
	}
}

// SetTab переключает вкладку. Запросов не делает.
func (p *FilterDemo) SetTab(tab Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = tab
}

// Change задаёт значение поля фильтра и перезапрашивает ресурс.
func (p *FilterDemo) Change(ctx context.Context, tab Tab, field, value string) error {
	p.mu.Lock()
	current := p.filters[tab]
	if !current.Has(field) {
		p.mu.Unlock()
		return ErrUnknownField
	}
	next := current.With(field, value)
	p.filters[tab] = next
	p.mu.Unlock()

	p.fetch(ctx, tab)
	return nil
}

// Apply заменяет фильтр ресурса значениями формы одним изменением.
// Поля, которых нет в values, становятся пустыми.
func (p *FilterDemo) Apply(ctx context.Context, tab Tab, values url.Values) error {
	p.mu.Lock()
	current, ok := p.filters[tab]
	if !ok {
		p.mu.Unlock()
		return ErrUnknownTab
	}
	for name := range values {
		if !current.Has(name) {
			p.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	next := current.Cleared()
	for _, f := range current.Fields() {
		next = next.With(f.Name, values.Get(f.Name))
	}
	p.filters[tab] = next
	p.mu.Unlock()

	p.fetch(ctx, tab)
	return nil
}

// Clear сбрасывает фильтр ресурса и перезапрашивает его.
func (p *FilterDemo) Clear(ctx context.Context, tab Tab) {
	p.mu.Lock()
	p.filters[tab] = p.filters[tab].Cleared()
	p.mu.Unlock()

	p.fetch(ctx, tab)
}

// Filters текущий фильтр вкладки.
func (p *FilterDemo) Filters(tab Tab) filter.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters[tab]
}

func (p *FilterDemo) fetch(ctx context.Context, tab Tab) {
	q := p.Filters(tab)
	switch tab {
	case TabNews:
		p.news.Load(ctx, func(ctx context.Context) ([]models.NewsItem, error) {
			return p.api.ListNews(ctx, q)
		})
	case TabTrainers:
		p.trainers.Load(ctx, func(ctx context.Context) ([]models.Trainer, error) {
			return p.api.ListTrainers(ctx, q)
		})
	case TabHorses:
		p.horses.Load(ctx, func(ctx context.Context) ([]models.Horse, error) {
			return p.api.ListHorses(ctx, q)
		})
	}
}

// State снимок активной вкладки.
func (p *FilterDemo) State() FilterDemoState {
	p.mu.Lock()
	tab := p.tab
	filters := p.filters[tab]
	p.mu.Unlock()

	state := FilterDemoState{Tab: tab, Filters: filters}
	switch tab {
	case TabNews:
		snap := p.news.Snapshot()
		state.Loading, state.News = snap.Loading, sanitize.NewsItems(snap.Items)
	case TabTrainers:
		snap := p.trainers.Snapshot()
		state.Loading, state.Trainers = snap.Loading, snap.Items
	case TabHorses:
		snap := p.horses.Snapshot()
		state.Loading, state.Horses = snap.Loading, snap.Items
	}
	return state
}

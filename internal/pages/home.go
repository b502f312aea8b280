package pages

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

// HomeAPI всё, что читают виджеты главной.
type HomeAPI interface {
	widgets.NewsSource
	widgets.TrainersSource
	widgets.HorsesSource
}

// HomeState снимок главной.
type HomeState struct {
	News     widgets.NewsState             `json:"news"`
	Trainers view.Snapshot[models.Trainer] `json:"trainers"`
	Horses   view.Snapshot[models.Horse]   `json:"horses"`
}

// Home главная: новости, тренеры, лошади.
type Home struct {
	News     *widgets.News
	Trainers *widgets.Sampled[models.Trainer]
	Horses   *widgets.Sampled[models.Horse]
}

// NewHome собирает виджеты главной.
func NewHome(api HomeAPI, log *slog.Logger, shuffle widgets.Shuffler) *Home {
	return &Home{
		News:     widgets.NewNews(api, log.With(slog.String("widget", "news"))),
		Trainers: widgets.NewTrainers(api, log, shuffle),
		Horses:   widgets.NewHorses(api, log, shuffle),
	}
}

// Mount монтирует виджеты. Их запросы независимы и идут параллельно.
func (h *Home) Mount(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		h.News.Mount(ctx)
	}()
	go func() {
		defer wg.Done()
		h.Trainers.Mount(ctx)
	}()
	go func() {
		defer wg.Done()
		h.Horses.Mount(ctx)
	}()
	wg.Wait()
}

// State снимок для отрисовки.
func (h *Home) State() HomeState {
	return HomeState{
		News:     h.News.State(),
		Trainers: h.Trainers.State(),
		Horses:   h.Horses.State(),
	}
}

package widgets

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
)

// Sampled виджет случайной выборки: при каждом монтировании
// список перемешивается заново.
type Sampled[T any] struct {
	list  *view.List[T]
	fetch view.FetchFunc[T]
}

func newSampled[T any](log *slog.Logger, limit int, shuffle Shuffler, fetch view.FetchFunc[T]) *Sampled[T] {
	return &Sampled[T]{
		list: view.NewList(log, func(items []T) []T {
			return Sample(items, limit, shuffle)
		}),
		fetch: fetch,
	}
}

// NewTrainers три случайных тренера.
func NewTrainers(api TrainersSource, log *slog.Logger, shuffle Shuffler) *Sampled[models.Trainer] {
	return newSampled(log.With(slog.String("widget", "trainers")), TrainersLimit, shuffle,
		func(ctx context.Context) ([]models.Trainer, error) {
			return api.ListTrainers(ctx, filter.State{})
		})
}

// NewHorses четыре случайные лошади.
func NewHorses(api HorsesSource, log *slog.Logger, shuffle Shuffler) *Sampled[models.Horse] {
	return newSampled(log.With(slog.String("widget", "horses")), HorsesLimit, shuffle,
		func(ctx context.Context) ([]models.Horse, error) {
			return api.ListHorses(ctx, filter.State{})
		})
}

// Mount загружает и перемешивает список.
func (w *Sampled[T]) Mount(ctx context.Context) {
	w.list.Load(ctx, w.fetch)
}

// State снимок для отрисовки.
func (w *Sampled[T]) State() view.Snapshot[T] {
	return w.list.Snapshot()
}

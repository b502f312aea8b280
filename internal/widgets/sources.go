package widgets

import (
	"context"

	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
)

// NewsSource чтение новостей из API.
type NewsSource interface {
	ListNews(ctx context.Context, q filter.State) ([]models.NewsItem, error)
	News(ctx context.Context, id int) (*models.NewsItem, error)
}

// TrainersSource чтение тренеров из API.
type TrainersSource interface {
	ListTrainers(ctx context.Context, q filter.State) ([]models.Trainer, error)
}

// HorsesSource чтение лошадей из API.
type HorsesSource interface {
	ListHorses(ctx context.Context, q filter.State) ([]models.Horse, error)
}

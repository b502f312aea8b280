// Package widgets компоненты-превью главной страницы: каждый загружает свой
// список один раз при монтировании, обрабатывает его и показывает
// ограниченную выборку со ссылкой на полный раздел.
package widgets

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/magabrotheeeer/horseclub-web/internal/models"
)

// Размеры выборок виджетов.
const (
	NewsLimit     = 5
	TrainersLimit = 3
	HorsesLimit   = 4
)

// Shuffler перемешивает n элементов через swap. Сигнатура совпадает с rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// DefaultShuffler перемешивание из math/rand/v2.
var DefaultShuffler Shuffler = rand.Shuffle

// SortByPublishedDesc возвращает копию новостей от свежих к старым.
// Новости без даты публикации идут в конце.
func SortByPublishedDesc(items []models.NewsItem) []models.NewsItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.NewsItem) int {
		return publishedAt(b).Compare(publishedAt(a))
	})
	return sorted
}

func publishedAt(item models.NewsItem) time.Time {
	if item.PublishedAt == nil {
		return time.Time{}
	}
	return item.PublishedAt.Time
}

// LatestNews свежие новости, не больше n.
func LatestNews(items []models.NewsItem, n int) []models.NewsItem {
	return truncate(SortByPublishedDesc(items), n)
}

// Sample перемешивает копию списка и берёт первые n. Результат
// намеренно не стабилен между вызовами.
func Sample[T any](items []T, n int, shuffle Shuffler) []T {
	if shuffle == nil {
		shuffle = DefaultShuffler
	}
	shuffled := slices.Clone(items)
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return truncate(shuffled, n)
}

// PublicExams оставляет только публичные экзамены.
func PublicExams(exams []models.Exam) []models.Exam {
	public := make([]models.Exam, 0, len(exams))
	for _, e := range exams {
		if e.IsPublic {
			public = append(public, e)
		}
	}
	return public
}

func truncate[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

package widgets

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
)

var premieres = []models.Movie{
	{ID: 1, TitleRU: "Аватар 3", TitleEN: "Avatar 3", Image: "https://via.placeholder.com/150x200/4CAF50/FFFFFF?text=Avatar+3", ReleaseDate: "2024-12-20", Description: "Продолжение эпической саги Джеймса Кэмерона"},
	{ID: 2, TitleRU: "Дюна: Часть вторая", TitleEN: "Dune: Part Two", Image: "https://via.placeholder.com/150x200/2196F3/FFFFFF?text=Dune+2", ReleaseDate: "2024-03-15", Description: "Завершение истории Пола Атрейдеса"},
	{ID: 3, TitleRU: "Мертвецы не умирают", TitleEN: "The Dead Don't Die", Image: "https://via.placeholder.com/150x200/FF9800/FFFFFF?text=Dead+Don't+Die", ReleaseDate: "2024-06-10", Description: "Зомби-комедия от Джима Джармуша"},
	{ID: 4, TitleRU: "Интерстеллар 2", TitleEN: "Interstellar 2", Image: "https://via.placeholder.com/150x200/9C27B0/FFFFFF?text=Interstellar+2", ReleaseDate: "2024-09-05", Description: "Новое космическое путешествие"},
	{ID: 5, TitleRU: "Матрица: Воскрешение", TitleEN: "The Matrix: Resurrection", Image: "https://via.placeholder.com/150x200/F44336/FFFFFF?text=Matrix+4", ReleaseDate: "2024-11-15", Description: "Возвращение в цифровой мир"},
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// MovieEntry строка виджета премьер.
type MovieEntry struct {
	models.Movie
	Position    int    `json:"position"`
	ReleaseText string `json:"release_text"`
	Favorite    bool   `json:"favorite"`
}

// Movies виджет премьер на статических данных.
type Movies struct {
	favorites view.Favorites
}

// NewMovies создаёт виджет.
func NewMovies() *Movies {
	return &Movies{}
}

// ToggleFavorite отмечает фильм в избранном экземпляра.
func (w *Movies) ToggleFavorite(id int) bool {
	return w.favorites.Toggle(id)
}

// State снимок для отрисовки. Загрузки нет, данные встроены.
func (w *Movies) State() []MovieEntry {
	entries := make([]MovieEntry, len(premieres))
	for i, m := range premieres {
		entries[i] = MovieEntry{
			Movie:       m,
			Position:    i + 1,
			ReleaseText: FormatDateRU(m.ReleaseDate),
			Favorite:    w.favorites.Has(m.ID),
		}
	}
	return entries
}

// FormatDateRU форматирует дату YYYY-MM-DD как "20 декабря 2024 г.".
// Непарсящаяся строка возвращается как есть.
func FormatDateRU(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d %s %d г.", t.Day(), monthsGenitive[t.Month()-1], t.Year())
}

// Package models содержит записи удалённого API клуба. Поля передаются в
// отрисовку без изменений, источником истины остаётся API.
package models

// NewsItem новость клуба.
type NewsItem struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	TitleEN     string     `json:"title_en,omitempty"`
	Content     string     `json:"content"`
	Image       string     `json:"image,omitempty"`
	PublishedAt *Timestamp `json:"published_at"`
	IsActive    bool       `json:"is_active"`
}

// Trainer тренер клуба.
type Trainer struct {
	ID              int    `json:"id"`
	FullName        string `json:"full_name"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Photo           string `json:"photo,omitempty"`
	ExperienceYears int    `json:"experience_years"`
	LessonsCount    int    `json:"lessons_count,omitempty"`
	IsTopTrainer    bool   `json:"is_top_trainer,omitempty"`
}

// Gender пол лошади.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Label возвращает подпись пола для отрисовки.
func (g Gender) Label() string {
	if g == GenderMale {
		return "Жеребец"
	}
	return "Кобыла"
}

// Horse лошадь клуба.
type Horse struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Gender           Gender `json:"gender"`
	Description      string `json:"description,omitempty"`
	Photo            string `json:"photo,omitempty"`
	TrainerName      string `json:"trainer_name,omitempty"`
	LessonsThisMonth int    `json:"lessons_this_month,omitempty"`
}

// Exam запись экзамена.
type Exam struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	CreatedAt Timestamp `json:"created_at"`
	Date      Timestamp `json:"date"`
	IsPublic  bool      `json:"is_public"`
	Image     string    `json:"image,omitempty"`
	Users     []string  `json:"users"`
}

// Movie элемент виджета премьер. Данные статические, API не используется.
type Movie struct {
	ID          int    `json:"id"`
	TitleRU     string `json:"title_ru"`
	TitleEN     string `json:"title_en"`
	Image       string `json:"image"`
	ReleaseDate string `json:"release_date"`
	Description string `json:"description"`
}

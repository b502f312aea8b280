package pages

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/horseclub-web/internal/models"
	"github.com/magabrotheeeer/horseclub-web/internal/view"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

// ExamsAPI чтение экзаменов.
type ExamsAPI interface {
	ListExams(ctx context.Context) ([]models.Exam, error)
}

// AfExamState снимок страницы экзаменов.
type AfExamState struct {
	Author  string        `json:"author"`
	Group   string        `json:"group"`
	Loading bool          `json:"loading"`
	Exams   []models.Exam `json:"exams"`
}

// AfExam таблица публичных экзаменов. Отбор по is_public делается здесь,
// API фильтр не получает.
type AfExam struct {
	api    ExamsAPI
	list   *view.List[models.Exam]
	author string
	group  string
}

// NewAfExam создаёт страницу с подписью автора и группы.
func NewAfExam(api ExamsAPI, log *slog.Logger, author, group string) *AfExam {
	return &AfExam{
		api:    api,
		list:   view.NewList(log.With(slog.String("page", "afexam")), widgets.PublicExams),
		author: author,
		group:  group,
	}
}

// Mount загружает экзамены.
func (p *AfExam) Mount(ctx context.Context) {
	p.list.Load(ctx, p.api.ListExams)
}

// State снимок для отрисовки.
func (p *AfExam) State() AfExamState {
	snap := p.list.Snapshot()
	return AfExamState{
		Author:  p.author,
		Group:   p.group,
		Loading: snap.Loading,
		Exams:   snap.Items,
	}
}

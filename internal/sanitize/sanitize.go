// Package sanitize граница между разметкой из API и HTML страницы.
// Контент новостей приходит как HTML и вставляется в страницу только после очистки.
package sanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/magabrotheeeer/horseclub-web/internal/models"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// HTML очищает разметку и помечает результат как безопасный для шаблонов.
func HTML(raw string) template.HTML {
	return template.HTML(policy.Sanitize(raw))
}

// String очищает разметку для JSON-ответов.
func String(raw string) string {
	return policy.Sanitize(raw)
}

// News копия новости с очищенным контентом.
func News(item models.NewsItem) models.NewsItem {
	item.Content = String(item.Content)
	return item
}

// NewsItems очищает контент каждой новости списка. Исходный срез не меняется.
func NewsItems(items []models.NewsItem) []models.NewsItem {
	if items == nil {
		return nil
	}
	out := make([]models.NewsItem, len(items))
	for i, item := range items {
		out[i] = News(item)
	}
	return out
}

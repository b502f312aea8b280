package models

import (
	"io"
	"strconv"
)

// PublishedAtLayout формат поля datetime-local формы новости.
const PublishedAtLayout = "2006-01-02T15:04"

// Image загружаемый файл изображения новости.
type Image struct {
	Filename string
	Body     io.Reader
}

// NewsForm поля формы создания и редактирования новости.
// Отправляется в API как multipart/form-data.
type NewsForm struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	PublishedAt string `json:"published_at"`
	IsActive    bool   `json:"is_active"`
	Image       *Image `json:"-"`
}

// EmptyNewsForm форма по умолчанию: новость активна, остальное пусто.
func EmptyNewsForm() NewsForm {
	return NewsForm{IsActive: true}
}

// NewsFormFrom заполняет форму из существующей новости. Изображение не трогаем.
func NewsFormFrom(item NewsItem) NewsForm {
	form := NewsForm{
		Title:    item.Title,
		Content:  item.Content,
		IsActive: item.IsActive,
	}
	switch {
	case item.PublishedAt == nil:
	case item.PublishedAt.Parsed():
		form.PublishedAt = item.PublishedAt.Format(PublishedAtLayout)
	case len(item.PublishedAt.Raw) > len(PublishedAtLayout):
		form.PublishedAt = item.PublishedAt.Raw[:len(PublishedAtLayout)]
	default:
		form.PublishedAt = item.PublishedAt.Raw
	}
	return form
}

// Fields возвращает текстовые поля формы в порядке отправки.
func (f NewsForm) Fields() [][2]string {
	return [][2]string{
		{"title", f.Title},
		{"content", f.Content},
		{"published_at", f.PublishedAt},
		{"is_active", strconv.FormatBool(f.IsActive)},
	}
}

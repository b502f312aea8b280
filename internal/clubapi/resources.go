package clubapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/magabrotheeeer/horseclub-web/internal/filter"
	"github.com/magabrotheeeer/horseclub-web/internal/models"
)

// ListNews GET /news/ с фильтрами.
func (c *Client) ListNews(ctx context.Context, q filter.State) ([]models.NewsItem, error) {
	return getList[models.NewsItem](ctx, c, ResourceNews, q.Encode())
}

// News GET /news/{id}/.
func (c *Client) News(ctx context.Context, id int) (*models.NewsItem, error) {
	return getItem[models.NewsItem](ctx, c, ResourceNews, id)
}

// ListTrainers GET /trainers/ с фильтрами.
func (c *Client) ListTrainers(ctx context.Context, q filter.State) ([]models.Trainer, error) {
	return getList[models.Trainer](ctx, c, ResourceTrainers, q.Encode())
}

// ListHorses GET /horses/ с фильтрами.
func (c *Client) ListHorses(ctx context.Context, q filter.State) ([]models.Horse, error) {
	return getList[models.Horse](ctx, c, ResourceHorses, q.Encode())
}

// ListExams GET /afexam/. Отбор публичных записей делает вызывающий.
func (c *Client) ListExams(ctx context.Context) ([]models.Exam, error) {
	return getList[models.Exam](ctx, c, ResourceExams, "")
}

// CreateNews POST /news/ в multipart/form-data.
func (c *Client) CreateNews(ctx context.Context, form models.NewsForm) error {
	const op = "clubapi.CreateNews"
	if err := c.sendNews(ctx, http.MethodPost, c.collectionURL(ResourceNews, ""), form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateNews PUT /news/{id}/ в multipart/form-data.
func (c *Client) UpdateNews(ctx context.Context, id int, form models.NewsForm) error {
	const op = "clubapi.UpdateNews"
	if err := c.sendNews(ctx, http.MethodPut, c.itemURL(ResourceNews, id), form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteNews DELETE /news/{id}/.
func (c *Client) DeleteNews(ctx context.Context, id int) error {
	const op = "clubapi.DeleteNews"
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.itemURL(ResourceNews, id), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = c.do(req, ResourceNews); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.invalidate(ctx, ResourceNews)
	return nil
}

func (c *Client) sendNews(ctx context.Context, method, target string, form models.NewsForm) error {
	body, contentType, err := encodeNewsForm(form)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	if _, err = c.do(req, ResourceNews); err != nil {
		return err
	}
	c.invalidate(ctx, ResourceNews)
	return nil
}

// encodeNewsForm собирает multipart-тело: текстовые поля, затем изображение, если оно есть.
func encodeNewsForm(form models.NewsForm) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range form.Fields() {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}
	if form.Image != nil && form.Image.Body != nil {
		part, err := w.CreateFormFile("image", form.Image.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err = io.Copy(part, form.Image.Body); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Package clubapi клиент удалённого REST API клуба.
//
// Списки приходят либо голым массивом, либо конвертом {"results": [...]};
// оба вида приводятся к []T здесь, выше по стеку разницы не видно.
package clubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/metrics"
)

// Ресурсы API.
const (
	ResourceNews     = "news"
	ResourceTrainers = "trainers"
	ResourceHorses   = "horses"
	ResourceExams    = "afexam"
)

const cachePrefix = "clubapi:"

var (
	// ErrUnexpectedStatus API ответил не 2xx.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrDecode тело ответа не JSON или не список.
	ErrDecode = errors.New("cannot decode response")
)

// StatusError ответ API с кодом вне 2xx.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %s: %d", e.Method, e.URL, ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Cache кеш сырых ответов на GET-запросы.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Client ходит в API клуба по фиксированному базовому адресу.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	log        *slog.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithCache включает кеширование GET-ответов.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// New создаёт клиент. baseURL вида http://localhost:8000/api/.
func New(baseURL string, timeout time.Duration, log *slog.Logger, opts ...Option) (*Client, error) {
	const op = "clubapi.New"
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url must be absolute: %q", op, baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) collectionURL(resource, query string) string {
	u := *c.baseURL
	u.Path += resource + "/"
	u.RawQuery = query
	return u.String()
}

func (c *Client) itemURL(resource string, id int) string {
	u := *c.baseURL
	u.Path += resource + "/" + strconv.Itoa(id) + "/"
	return u.String()
}

// cacheKey строится по пути относительно базы, чтобы префикс ресурса
// покрывал и коллекцию, и элементы.
func cacheKey(resource, rest string) string {
	return cachePrefix + resource + "/" + rest
}

// get выполняет GET и возвращает тело, проверенное на валидный JSON.
func (c *Client) get(ctx context.Context, resource, key, target string) (json.RawMessage, error) {
	const op = "clubapi.get"
	log := c.log.With(slog.String("op", op), slog.String("url", target))

	if c.cache != nil {
		var cached json.RawMessage
		found, err := c.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			log.Warn("cache lookup failed", sl.Err(err))
		case found:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req, resource)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: %w: body is not json", op, ErrDecode)
	}

	raw := json.RawMessage(body)
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
			log.Warn("failed to cache response", sl.Err(err))
		}
	}
	return raw, nil
}

// do отправляет запрос и читает тело. Код вне 2xx превращается в *StatusError.
func (c *Client) do(req *http.Request, resource string) ([]byte, error) {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(resource, req.Method, 0, started)
		return nil, err
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(resource, req.Method, resp.StatusCode, started)

	c.log.Debug("club api responded",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Method: req.Method, URL: req.URL.String(), Code: resp.StatusCode}
	}
	return body, nil
}

// invalidate сбрасывает кеш ресурса после изменения.
func (c *Client) invalidate(ctx context.Context, resource string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidatePrefix(ctx, cacheKey(resource, "")); err != nil {
		c.log.Warn("failed to invalidate cache", slog.String("resource", resource), sl.Err(err))
	}
}

// DecodeList приводит тело ответа к списку: голый массив или конверт с results.
// Конверт без results даёт пустой список.
func DecodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if envelope.Results == nil {
		return []T{}, nil
	}
	return envelope.Results, nil
}

func getList[T any](ctx context.Context, c *Client, resource, query string) ([]T, error) {
	raw, err := c.get(ctx, resource, cacheKey(resource, queryPart(query)), c.collectionURL(resource, query))
	if err != nil {
		return nil, err
	}
	return DecodeList[T](raw)
}

func getItem[T any](ctx context.Context, c *Client, resource string, id int) (*T, error) {
	raw, err := c.get(ctx, resource, cacheKey(resource, strconv.Itoa(id)+"/"), c.itemURL(resource, id))
	if err != nil {
		return nil, err
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &item, nil
}

func queryPart(query string) string {
	if query == "" {
		return ""
	}
	return "?" + query
}

package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/horseclub-web/internal/lib/sl"
	"github.com/magabrotheeeer/horseclub-web/internal/metrics"
)

// FetchFunc загружает список из API.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// PostFunc обрабатывает полученный список перед отрисовкой.
type PostFunc[T any] func([]T) []T

// Snapshot состояние списка для отрисовки. Items пуст, пока идёт загрузка.
type Snapshot[T any] struct {
	Loading bool `json:"loading"`
	Items   []T  `json:"items"`
}

// List компонент-список: загрузка, постобработка, отсечение устаревших ответов.
type List[T any] struct {
	fence Fence
	log   *slog.Logger
	post  PostFunc[T]

	mu    sync.RWMutex
	items []T
}

// NewList создаёт список. post может быть nil.
func NewList[T any](log *slog.Logger, post PostFunc[T]) *List[T] {
	return &List[T]{
		log:   log,
		post:  post,
		items: []T{},
	}
}

// Load выполняет один запрос. Ошибка логируется и оставляет список прежним,
// загрузка при этом снимается. Возвращает false, если ответ устарел и был выброшен.
func (l *List[T]) Load(ctx context.Context, fetch FetchFunc[T]) bool {
	const op = "view.List.Load"
	tok := l.fence.Begin()

	items, err := fetch(ctx)
	if err == nil && l.post != nil {
		items = l.post(items)
	}

	applied := l.fence.Settle(tok, func() {
		if err != nil {
			return
		}
		if items == nil {
			items = []T{}
		}
		l.mu.Lock()
		l.items = items
		l.mu.Unlock()
	})

	log := l.log.With(slog.String("op", op), sl.Seq(uint64(tok)))
	switch {
	case !applied:
		metrics.StaleResponses.Inc()
		log.Debug("stale response discarded")
	case err != nil:
		log.Error("failed to fetch list", sl.Err(err))
	}
	return applied
}

// Loading сообщает, идёт ли загрузка.
func (l *List[T]) Loading() bool {
	return l.fence.Loading()
}

// Items возвращает копию текущего списка.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Update заменяет список результатом fn без запроса к API.
func (l *List[T]) Update(fn func([]T) []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = fn(l.items)
}

// Snapshot возвращает состояние для отрисовки: либо заглушка загрузки, либо список.
func (l *List[T]) Snapshot() Snapshot[T] {
	if l.Loading() {
		return Snapshot[T]{Loading: true, Items: []T{}}
	}
	return Snapshot[T]{Items: l.Items()}
}

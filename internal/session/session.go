// Package session хранит в памяти экземпляры компонентов каждого посетителя.
// Ничего не сохраняется на диск: после перезапуска или истечения ttl
// посетитель получает новую сессию.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/horseclub-web/internal/pages"
	"github.com/magabrotheeeer/horseclub-web/internal/widgets"
)

// Visitor состояние одного посетителя: смонтированные компоненты и флаг меню.
type Visitor struct {
	ID string

	mu       sync.Mutex
	seen     time.Time
	menuOpen bool
	limiter  *rate.Limiter

	home    *pages.Home
	movies  *widgets.Movies
	news    *pages.NewsList
	filters *pages.FilterDemo
	afexam  *pages.AfExam
}

func get[T any](v *Visitor, slot **T) *T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return *slot
}

func set[T any](v *Visitor, slot **T, value *T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	*slot = value
}

func (v *Visitor) Home() *pages.Home                 { return get(v, &v.home) }
func (v *Visitor) SetHome(h *pages.Home)             { set(v, &v.home, h) }
func (v *Visitor) Movies() *widgets.Movies           { return get(v, &v.movies) }
func (v *Visitor) SetMovies(m *widgets.Movies)       { set(v, &v.movies, m) }
func (v *Visitor) NewsList() *pages.NewsList         { return get(v, &v.news) }
func (v *Visitor) SetNewsList(p *pages.NewsList)     { set(v, &v.news, p) }
func (v *Visitor) FilterDemo() *pages.FilterDemo     { return get(v, &v.filters) }
func (v *Visitor) SetFilterDemo(p *pages.FilterDemo) { set(v, &v.filters, p) }
func (v *Visitor) AfExam() *pages.AfExam             { return get(v, &v.afexam) }
func (v *Visitor) SetAfExam(p *pages.AfExam)         { set(v, &v.afexam, p) }

// Limiter лимитер изменяющих запросов посетителя. Создаётся при первом
// обращении и живёт вместе с сессией.
func (v *Visitor) Limiter(limit rate.Limit, burst int) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.limiter == nil {
		v.limiter = rate.NewLimiter(limit, burst)
	}
	return v.limiter
}

// ToggleMenu переключает бургер-меню и возвращает новое состояние.
func (v *Visitor) ToggleMenu() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.menuOpen = !v.menuOpen
	return v.menuOpen
}

// CloseMenu закрывает меню при переходе на страницу.
func (v *Visitor) CloseMenu() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.menuOpen = false
}

// MenuOpen сообщает, открыто ли меню.
func (v *Visitor) MenuOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.menuOpen
}

func (v *Visitor) touch(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seen = now
}

func (v *Visitor) lastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seen
}

// Store сессии посетителей по идентификатору из cookie.
type Store struct {
	log *slog.Logger
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	visitors map[string]*Visitor
}

// NewStore создаёт хранилище. Сессия без запросов дольше ttl удаляется в Sweep.
func NewStore(ttl time.Duration, log *slog.Logger) *Store {
	return &Store{
		log:      log,
		ttl:      ttl,
		now:      time.Now,
		visitors: make(map[string]*Visitor),
	}
}

// Acquire возвращает сессию по id или создаёт новую, если id пуст,
// не является UUID или сессия уже удалена. created сообщает, что
// посетителю нужно выставить новый cookie.
func (s *Store) Acquire(id string) (v *Visitor, created bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if v, ok := s.visitors[id]; ok {
			v.touch(now)
			return v, false
		}
	}

	v = &Visitor{ID: uuid.NewString(), seen: now}
	s.visitors[v.ID] = v
	return v, true
}

// Len количество живых сессий.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// Sweep удаляет просроченные сессии и возвращает их число.
func (s *Store) Sweep() int {
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, v := range s.visitors {
		if v.lastSeen().Before(deadline) {
			delete(s.visitors, id)
			removed++
		}
	}
	return removed
}

// Run периодически чистит просроченные сессии, пока не отменён ctx.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	const op = "session.Store.Run"
	log := s.log.With(slog.String("op", op))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug("expired sessions removed", slog.Int("count", n), slog.Int("alive", s.Len()))
			}
		}
	}
}

package view

import (
	"slices"
	"sync"
)

// Favorites избранное компонента. Живёт только в памяти экземпляра
// и никуда не отправляется.
type Favorites struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

// Toggle добавляет id или убирает его, если он уже есть. Возвращает новое состояние.
func (f *Favorites) Toggle(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids == nil {
		f.ids = make(map[int]struct{})
	}
	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

// Has сообщает, отмечен ли id.
func (f *Favorites) Has(id int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

// IDs возвращает отмеченные id по возрастанию.
func (f *Favorites) IDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

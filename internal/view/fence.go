// Package view содержит общий контракт компонентов-списков: флаг загрузки,
// текущий список и монотонный номер запроса, по которому отбрасываются
// устаревшие ответы.
package view

import "sync"

// Token номер запроса компонента.
type Token uint64

// Fence выдаёт номера запросов и хранит флаг загрузки.
// Признаётся только ответ на последний выданный номер.
type Fence struct {
	mu      sync.Mutex
	seq     Token
	loading bool
}

// Begin выдаёт новый номер и включает загрузку.
func (f *Fence) Begin() Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.loading = true
	return f.seq
}

// Settle завершает запрос tok. Возвращает false, если за время запроса
// был выдан более новый номер: тогда ответ нужно выбросить, а загрузка
// остаётся включённой до ответа на новый номер.
func (f *Fence) Settle(tok Token, apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tok != f.seq {
		return false
	}
	if apply != nil {
		apply()
	}
	f.loading = false
	return true
}

// Loading сообщает, ждёт ли компонент ответа.
func (f *Fence) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

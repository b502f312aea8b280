// Package filter реализует объект состояния фильтров: плоское упорядоченное
// отображение имя поля -> сырое значение, которое сериализуется в query string.
//
// State неизменяем: любое изменение возвращает новый объект, старый остаётся
// пригодным для сравнения и повторной отправки.
package filter

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Field одно поле фильтра.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// State объект состояния фильтров. Порядок полей совпадает с порядком объявления.
type State struct {
	fields []Field
}

// New создаёт состояние с пустыми значениями для перечисленных полей.
func New(names ...string) State {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name}
	}
	return State{fields: fields}
}

// News поля фильтра новостей.
func News() State { return New("title", "is_active", "published_after", "published_before") }

// Trainers поля фильтра тренеров.
func Trainers() State { return New("name", "experience_min", "experience_max") }

// Horses поля фильтра лошадей.
func Horses() State { return New("name", "gender", "description") }

// With возвращает копию состояния с новым значением поля.
// Неизвестное поле добавляется в конец.
func (s State) With(name, value string) State {
	fields := make([]Field, len(s.fields), len(s.fields)+1)
	copy(fields, s.fields)
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = value
			return State{fields: fields}
		}
	}
	return State{fields: append(fields, Field{Name: name, Value: value})}
}

// WithBool задаёт булево значение. false считается пустым и не попадёт в запрос,
// в отличие от строки "false", заданной через With.
func (s State) WithBool(name string, value bool) State {
	if value {
		return s.With(name, "true")
	}
	return s.With(name, "")
}

// Get возвращает значение поля или пустую строку.
func (s State) Get(name string) string {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Has сообщает, объявлено ли поле в состоянии.
func (s State) Has(name string) bool {
	for _, f := range s.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Cleared возвращает состояние с теми же полями и пустыми значениями.
func (s State) Cleared() State {
	fields := make([]Field, len(s.fields))
	for i, f := range s.fields {
		fields[i] = Field{Name: f.Name}
	}
	return State{fields: fields}
}

// Fields возвращает копию полей в порядке объявления.
func (s State) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Encode сериализует непустые поля в порядке объявления.
// url.Values не подходит: он сортирует ключи.
func (s State) Encode() string {
	var b strings.Builder
	for _, f := range s.fields {
		if f.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}

// MarshalJSON отдаёт состояние как массив полей, чтобы сохранить порядок.
func (s State) MarshalJSON() ([]byte, error) {
	if s.fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.fields)
}

package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// timestampLayouts форматы дат, которые присылает API: datetime с зоной,
// datetime без зоны и голая дата.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Timestamp дата из записи API. Исходная строка сохраняется в Raw и
// отдаётся обратно без изменений; Time заполнено, только если строку
// удалось разобрать.
type Timestamp struct {
	time.Time
	Raw string
}

// NewTimestamp оборачивает уже известное время.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339)}
}

// ParseTimestamp разбирает строку по известным форматам. Нераспознанная
// строка не считается ошибкой: она остаётся в Raw.
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{Raw: s}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			break
		}
	}
	return ts
}

// Parsed сообщает, удалось ли разобрать дату.
func (ts Timestamp) Parsed() bool {
	return !ts.Time.IsZero()
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = ParseTimestamp(s)
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case ts.Raw != "":
		return json.Marshal(ts.Raw)
	case ts.Parsed():
		return json.Marshal(ts.Time.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

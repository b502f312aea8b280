// Package sl содержит вспомогательные функции для работы с логгером slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil возвращает пустую строку, чтобы лог не падал на ветках без ошибки.
//
// Пример:
//
//	log.Error("failed to fetch news", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Seq возвращает атрибут с номером запроса компонента.
func Seq(seq uint64) slog.Attr {
	return slog.Uint64("seq", seq)
}

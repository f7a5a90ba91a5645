// Package sanitize очищает отображаемые строки, приходящие от недоверенных клиентов,
// перед сохранением и отправкой в Telegram (parse_mode=HTML).
package sanitize

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Clean удаляет HTML-подобные теги и экранирует оставшиеся угловые скобки.
// Очистка выполняется один раз до записи в базу, чтобы сохранённое значение
// и текст уведомления всегда совпадали.
func Clean(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return strings.TrimSpace(s)
}

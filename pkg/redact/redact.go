// Package redact маскирует персональные данные перед записью в логи.
package redact

import "strings"

// Email оставляет первые две руны локальной части и домен: "albert@x.com" -> "al***@x.com".
// Для строк, не похожих на адрес, возвращает "***".
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***"
	}

	runes := []rune(local)
	if len(runes) > 2 {
		local = string(runes[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Query маскирует поисковую строку, если она похожа на e-mail; прочие запросы (имена) не трогает.
func Query(s string) string {
	if strings.Contains(s, "@") {
		return Email(s)
	}

	return s
}

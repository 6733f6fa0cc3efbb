package telegram

import (
	"strings"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

// ParseSearchCommand разбирает поисковое сообщение:
// /news текст, /cafe текст -> соответствующий индекс
// /search текст и обычный текст -> текущий индекс чата
func ParseSearchCommand(text string, current domain.SearchType) (query string, searchType domain.SearchType) {
	text = strings.TrimSpace(text)

	if text == "" {
		return "", current
	}

	if !strings.HasPrefix(text, "/") {
		return normalizeSpaces(text), current
	}

	parts := strings.SplitN(text, " ", 2)
	command := strings.ToLower(parts[0])
	// /news@my_bot в группах
	if at := strings.IndexByte(command, '@'); at > 0 {
		command = command[:at]
	}

	var rest string
	if len(parts) > 1 {
		rest = normalizeSpaces(parts[1])
	}

	switch command {
	case "/news":
		return rest, domain.SearchNews
	case "/cafe", "/forum":
		return rest, domain.SearchForum
	case "/search":
		return rest, current
	default:
		return text, current
	}
}

func normalizeSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

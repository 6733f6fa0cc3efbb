package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/render"
	"github.com/kitbuilder587/naver-search/internal/service"
)

// FormatPage - текущая страница сессии в Telegram HTML
func FormatPage(v service.View) string {
	if v.Err != nil {
		return html.EscapeString(v.Message)
	}
	if v.TotalCount == 0 {
		return "Send a search term to start."
	}

	var sb strings.Builder
	sb.WriteString(formatHeader(v))

	if len(v.Items) == 0 {
		sb.WriteString("\n\nNothing matches the current filters.")
		return sb.String()
	}

	for i, item := range v.Items {
		sb.WriteString("\n\n")
		sb.WriteString(FormatItem(v.Offset+i+1, item))
	}

	if v.ShowPagination() {
		sb.WriteString("\n\n")
		sb.WriteString(formatNav(v))
	}

	return sb.String()
}

func formatHeader(v service.View) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b> · %s · %s\n",
		html.EscapeString(v.Query.Text),
		typeLabel(v.Query.Type),
		sortLabel(v.Query.Sort),
	))
	sb.WriteString(fmt.Sprintf("%d results", v.FilteredCount))
	if v.FilteredCount != v.TotalCount {
		sb.WriteString(fmt.Sprintf(" of %d", v.TotalCount))
	}
	if v.TotalPages > 1 {
		sb.WriteString(fmt.Sprintf(" · page %d/%d", v.CurrentPage, v.TotalPages))
	}

	var filters []string
	if v.SubQuery != "" {
		filters = append(filters, "contains \""+html.EscapeString(v.SubQuery)+"\"")
	}
	if v.RecencyDays != nil {
		filters = append(filters, fmt.Sprintf("last %d days", *v.RecencyDays))
	}
	if len(filters) > 0 {
		sb.WriteString("\n<i>")
		sb.WriteString(strings.Join(filters, ", "))
		sb.WriteString("</i>")
	}

	return sb.String()
}

// FormatItem - одна запись. В заголовке и описании остается только <b> провайдера.
func FormatItem(n int, item domain.SearchItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d. %s", n, render.Highlight(item.Title)))

	if item.PublishedAt != nil {
		sb.WriteString("\n" + render.FormatDate(item.PublishedAt))
	}
	if item.SourceName != "" {
		sb.WriteString("\nFrom: " + html.EscapeString(item.SourceName))
	}

	if desc := render.Highlight(item.Description); desc != "" {
		sb.WriteString("\n" + desc)
	}

	links := []string{link(item.Link, "Naver")}
	if item.OriginalLink != "" {
		links = append(links, link(item.OriginalLink, "Original"))
	}
	if item.SourceURL != "" {
		links = append(links, link(item.SourceURL, "Cafe"))
	}
	sb.WriteString("\n" + strings.Join(links, " · "))

	return sb.String()
}

func formatNav(v service.View) string {
	var parts []string
	if v.HasPrev() {
		parts = append(parts, "/prev")
	}
	if v.HasNext() {
		parts = append(parts, "/next")
	}
	parts = append(parts, fmt.Sprintf("/page 1-%d", v.TotalPages))
	return strings.Join(parts, " · ")
}

func link(url, label string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), label)
}

func typeLabel(t domain.SearchType) string {
	if t == domain.SearchForum {
		return "cafe"
	}
	return "news"
}

func sortLabel(s domain.SortMode) string {
	if s == domain.SortDate {
		return "newest"
	}
	return "relevance"
}

func SplitMessage(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var messages []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			messages = append(messages, text)
			break
		}

		splitPoint := findSafeSplitPoint(text, maxLen)
		if splitPoint <= 0 || splitPoint > len(text) {
			splitPoint = maxLen
		}

		messages = append(messages, text[:splitPoint])
		text = text[splitPoint:]
	}

	return messages
}

func findSafeSplitPoint(text string, maxLen int) int {
	// записи разделены пустой строкой, по ней резать лучше всего
	if i := strings.LastIndex(text[:maxLen], "\n\n"); i > maxLen/2 {
		return i + 2
	}

	// ищем пробел или перевод строки, не ломая HTML-теги
	for i := maxLen - 1; i > maxLen/2; i-- {
		if i >= len(text) {
			continue
		}
		if isInsideHTMLTag(text, i) {
			continue
		}

		if text[i] == '\n' || text[i] == ' ' {
			return i + 1
		}
	}

	// внутри тега - ищем конец
	if maxLen < len(text) && isInsideHTMLTag(text, maxLen) {
		for i := maxLen; i < len(text); i++ {
			if text[i] == '>' {
				for j := i + 1; j < len(text) && j < i+50; j++ {
					if text[j] == '\n' || text[j] == ' ' {
						return j + 1
					}
				}
				return i + 1
			}
		}
	}

	for i := maxLen - 1; i > 0; i-- {
		if text[i] == ' ' || text[i] == '\n' {
			return i + 1
		}
	}

	return maxLen
}

func isInsideHTMLTag(text string, pos int) bool {
	if pos >= len(text) || pos < 0 {
		return false
	}
	for i := pos; i >= 0; i-- {
		if text[i] == '>' {
			return false
		}
		if text[i] == '<' {
			return true
		}
	}
	return false
}

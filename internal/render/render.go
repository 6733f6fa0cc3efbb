// Package render - общие хелперы отображения выдачи: очистка разметки
// провайдера, даты, справка по операторам поиска.
package render

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const DateLayout = "2006-01-02 15:04"

// Operator - оператор поискового языка провайдера
type Operator struct {
	Symbol  string
	Meaning string
	Example string
}

var Operators = []Operator{
	{Symbol: "+", Meaning: "must include", Example: "semiconductor +samsung"},
	{Symbol: "-", Meaning: "exclude", Example: "iphone -price"},
	{Symbol: "|", Meaning: "either", Example: "car |ship"},
	{Symbol: `" "`, Meaning: "exact phrase", Example: `"ai assistant"`},
}

// OperatorHelp - справка одной строкой на оператор
func OperatorHelp() string {
	var sb strings.Builder
	for _, op := range Operators {
		sb.WriteString(op.Symbol)
		sb.WriteString("  ")
		sb.WriteString(op.Meaning)
		sb.WriteString(" (e.g. ")
		sb.WriteString(op.Example)
		sb.WriteString(")\n")
	}
	return sb.String()
}

var (
	highlightPolicy = newHighlightPolicy()
	stripPolicy     = bluemonday.StrictPolicy()
)

// в выдаче провайдера из разметки бывает только <b> вокруг совпадений
func newHighlightPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b")
	return p
}

// Highlight оставляет только <b>, остальное вырезается. Результат можно
// вставлять в HTML как есть.
func Highlight(s string) string {
	return highlightPolicy.Sanitize(s)
}

// PlainText убирает всю разметку и раскодирует сущности (&quot; и т.п.)
func PlainText(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// FormatDate - локальное время публикации, пустая строка если даты нет
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(DateLayout)
}

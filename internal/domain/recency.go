package domain

import (
	"strconv"
	"strings"
)

// RecencyPreset - пресеты фильтра по дате из интерфейса
type RecencyPreset struct {
	Label string
	Days  *int
}

func days(n int) *int { return &n }

var RecencyPresets = []RecencyPreset{
	{Label: "all", Days: nil},
	{Label: "1d", Days: days(1)},
	{Label: "3d", Days: days(3)},
	{Label: "7d", Days: days(7)},
}

// ParseRecency: "", "all" -> nil (без фильтра), "3" или "3d" -> 3 дня
func ParseRecency(s string) (*int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return nil, nil
	}
	s = strings.TrimSuffix(s, "d")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, ErrInvalidRecency
	}
	return &n, nil
}

func FormatRecency(d *int) string {
	if d == nil {
		return "all"
	}
	return strconv.Itoa(*d)
}

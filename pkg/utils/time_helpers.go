package utils

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"02/01/2006",
}

// ParseDate принимает ISO-дату, RFC3339 и несколько форматов из выгрузок Excel.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNullDate - пустая или нераспознанная строка даёт невалидный null.Time.
func ParseNullDate(raw string) null.Time {
	t, ok := ParseDate(raw)
	return null.NewTime(t, ok)
}

// FormatNullDate форматирует дату как yyyy-mm-dd, для пустой - fallback.
func FormatNullDate(t null.Time, fallback string) string {
	if !t.Valid {
		return fallback
	}
	return t.Time.Format(DateLayout)
}

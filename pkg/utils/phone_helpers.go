package utils

import (
	"regexp"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// NormalizePhone оставляет последние 10 цифр национального номера.
// Короткие номера возвращаются как есть, без нецифровых символов.
func NormalizePhone(phone string) string {
	digitsOnly := nonDigitRegexp.ReplaceAllString(phone, "")
	if len(digitsOnly) <= 10 {
		return digitsOnly
	}
	return digitsOnly[len(digitsOnly)-10:]
}

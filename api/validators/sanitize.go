package validators

import "strings"

// SanitizeString trims surrounding whitespace and hard-caps length. Truncation
// respects rune boundaries so a multibyte character is never split.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || len(trimmed) <= maxLen {
		return trimmed
	}

	runes := []rune(trimmed)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes)
}

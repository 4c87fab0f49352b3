package utils

import "unicode/utf8"

// Message length limits for user-facing errors.
const (
	ShortMessageLimit = 100
	LongMessageLimit  = 200
)

// MaskAPIKey masks a credential for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// Truncate cuts s to at most limit runes. Multi-byte characters are never split.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// TruncateError returns the truncated error text, or "" for a nil error.
func TruncateError(err error, limit int) string {
	if err == nil {
		return ""
	}
	return Truncate(err.Error(), limit)
}

package utils

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "Empty key", key: "", expected: "****"},
		{name: "Short key (8 chars)", key: "12345678", expected: "****"},
		{name: "Normal key (12 chars)", key: "123456789012", expected: "1234****9012"},
		{name: "Hugging Face token", key: "hf_abcdefghijklmnopqrstuvwxyz", expected: "hf_a****wxyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskAPIKey(tt.key)
			if got != tt.expected {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}

	t.Run("Masked key should not contain middle characters", func(t *testing.T) {
		masked := MaskAPIKey("sk-live-supersecretkey123")
		if strings.Contains(masked, "supersecret") {
			t.Errorf("MaskAPIKey leaked secret: %q", masked)
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "shorter than limit", input: "timeout", limit: 100, expected: "timeout"},
		{name: "exactly limit", input: "abcde", limit: 5, expected: "abcde"},
		{name: "longer than limit", input: "abcdefgh", limit: 3, expected: "abc"},
		{name: "zero limit", input: "abc", limit: 0, expected: ""},
		{name: "multibyte runes", input: "圖像生成失敗", limit: 2, expected: "圖像"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.limit)
			if got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestTruncateError(t *testing.T) {
	if got := TruncateError(nil, ShortMessageLimit); got != "" {
		t.Errorf("TruncateError(nil) = %q, want empty", got)
	}

	long := errors.New(strings.Repeat("x", 250))
	if got := TruncateError(long, LongMessageLimit); len(got) != LongMessageLimit {
		t.Errorf("TruncateError length = %d, want %d", len(got), LongMessageLimit)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "Valid HTTPS URL", url: "https://image.pollinations.ai", expected: true},
		{name: "Valid HTTP URL", url: "http://api.example.com", expected: true},
		{name: "Valid URL with port", url: "https://api.example.com:8080", expected: true},
		{name: "Valid URL with path", url: "https://api.navy/v1", expected: true},
		{name: "Valid localhost URL", url: "http://localhost:8080", expected: true},
		{name: "Empty string", url: "", expected: false},
		{name: "No scheme", url: "api.example.com", expected: false},
		{name: "No host", url: "https://", expected: false},
		{name: "Invalid scheme - ftp", url: "ftp://files.example.com", expected: false},
		{name: "Malformed URL", url: "not a url at all", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateURL(tt.url)
			if got != tt.expected {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     string
		expected string
	}{
		{name: "no slashes", base: "https://api.navy/v1", path: "models", expected: "https://api.navy/v1/models"},
		{name: "trailing base slash", base: "https://api.navy/v1/", path: "models", expected: "https://api.navy/v1/models"},
		{name: "leading path slash", base: "https://api.navy/v1", path: "/images/generations", expected: "https://api.navy/v1/images/generations"},
		{name: "both slashes", base: "https://x.io/", path: "/prompt", expected: "https://x.io/prompt"},
		{name: "empty path", base: "https://x.io/", path: "", expected: "https://x.io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinURL(tt.base, tt.path)
			if got != tt.expected {
				t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.expected)
			}
		})
	}
}

func TestExtractHost(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "Simple HTTPS URL", url: "https://api-inference.huggingface.co", expected: "api-inference.huggingface.co"},
		{name: "URL with port", url: "https://api.example.com:8080", expected: "api.example.com:8080"},
		{name: "URL with path", url: "https://api.openai.com/v1", expected: "api.openai.com"},
		{name: "Empty string", url: "", expected: ""},
		{name: "Invalid URL - no scheme", url: "api.example.com", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHost(tt.url)
			if got != tt.expected {
				t.Errorf("ExtractHost(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

package compatibility

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorInfo describes a failed credential check
type ErrorInfo struct {
	Category    string `json:"category"`
	StatusCode  int    `json:"statusCode,omitempty"`
	Message     string `json:"message"`
	UserMessage string `json:"userMessage"`
}

var errorUserMessages = map[string]string{
	ErrorCategoryAuthFailure:        "Authentication failed. Check the API key or token.",
	ErrorCategoryNotFound:           "No model listing at this base URL.",
	ErrorCategoryRateLimit:          "Rate limit exceeded. Try again later.",
	ErrorCategoryServerError:        "The provider returned a server error. Try again later.",
	ErrorCategoryNetworkError:       "Network error: unable to reach the provider.",
	ErrorCategoryUnexpectedListing:  "The model listing was not in the expected format.",
	ErrorCategoryMissingCredentials: "This provider requires an API key.",
	ErrorCategoryUnknown:            "An unknown error occurred.",
}

// statusCategories covers the listing statuses with a dedicated category.
// Anything 5xx is a server error; the rest is unknown.
var statusCategories = map[int]string{
	http.StatusUnauthorized:    ErrorCategoryAuthFailure,
	http.StatusForbidden:       ErrorCategoryAuthFailure,
	http.StatusNotFound:        ErrorCategoryNotFound,
	http.StatusTooManyRequests: ErrorCategoryRateLimit,
}

// CategorizeStatus maps a rejected model listing response to a category.
func CategorizeStatus(statusCode int) string {
	if category, ok := statusCategories[statusCode]; ok {
		return category
	}
	if statusCode >= http.StatusInternalServerError {
		return ErrorCategoryServerError
	}
	return ErrorCategoryUnknown
}

// providerMessagePaths lists where services put their own error text:
// OpenAI-style error.message, Hugging Face's flat error string, then the
// generic message/detail fields.
var providerMessagePaths = []string{"error.message", "error", "message", "detail"}

func providerMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range providerMessagePaths {
		r := gjson.GetBytes(body, path)
		if r.Type == gjson.String && strings.TrimSpace(r.Str) != "" {
			return strings.TrimSpace(r.Str)
		}
	}
	return ""
}

// StatusErrorInfo describes a rejected listing request. Message is the
// provider's own error text when the body carries one.
func StatusErrorInfo(statusCode int, body []byte) *ErrorInfo {
	category := CategorizeStatus(statusCode)
	info := &ErrorInfo{
		Category:    category,
		StatusCode:  statusCode,
		Message:     providerMessage(body),
		UserMessage: GetUserMessage(category),
	}
	if info.Message == "" {
		info.Message = info.UserMessage
	}
	return info
}

// NetworkErrorInfo describes a request that never got a response.
func NetworkErrorInfo(err error) *ErrorInfo {
	message := "Network error"
	if err != nil {
		message = err.Error()
	}
	return &ErrorInfo{
		Category:    ErrorCategoryNetworkError,
		Message:     message,
		UserMessage: errorUserMessages[ErrorCategoryNetworkError],
	}
}

// GetUserMessage returns the user-facing message for category
func GetUserMessage(category string) string {
	if msg, ok := errorUserMessages[category]; ok {
		return msg
	}
	return errorUserMessages[ErrorCategoryUnknown]
}

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"imgstudio/internal/utils"
)

// InputValidator validates user input
type InputValidator struct {
}

// NewInputValidator creates a new InputValidator
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateName checks if a profile name is valid
func (iv *InputValidator) ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.ContainsAny(name, "<>\"'&/\\") {
		return fmt.Errorf("profile name contains invalid characters")
	}
	if len(name) > 50 {
		return fmt.Errorf("profile name is too long (max 50 characters)")
	}
	return nil
}

// ValidateURL checks if a URL is valid
func (iv *InputValidator) ValidateURL(url string) error {
	if url != "" && !utils.ValidateURL(url) {
		return fmt.Errorf("invalid URL format")
	}
	return nil
}

// ValidateModelName checks if a model id is valid. Repository-style ids
// such as "stabilityai/sdxl" are allowed.
func (iv *InputValidator) ValidateModelName(model string) error {
	if model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if strings.ContainsAny(model, "<>\"'&\\ ") {
		return fmt.Errorf("model name contains invalid characters")
	}
	return nil
}

// ValidatePrompt rejects blank prompts
func (iv *InputValidator) ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	return nil
}

// ParseSize splits "WxH" into positive dimensions
func ParseSize(size string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(size)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size '%s': expected WIDTHxHEIGHT", size)
	}
	width, err = strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid size '%s': bad width", size)
	}
	height, err = strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size '%s': bad height", size)
	}
	return width, height, nil
}

// ValidateSize checks a "WxH" size string
func (iv *InputValidator) ValidateSize(size string) error {
	_, _, err := ParseSize(size)
	return err
}

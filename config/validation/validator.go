package validation

import (
	"fmt"
	"strings"

	"imgstudio/config/models"
	"imgstudio/internal/providers"
	"imgstudio/internal/utils"
)

// Validator validates provider profiles
type Validator struct {
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateProfile validates a profile
func (v *Validator) ValidateProfile(p models.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	provider, err := providers.Get(p.Provider)
	if err != nil {
		return fmt.Errorf("unknown provider: %s", p.Provider)
	}

	if !p.AuthMode.Valid() {
		return fmt.Errorf("invalid auth mode: %s", p.AuthMode)
	}

	// Provider-specific validation
	if err := provider.ValidateCredentials(p.APIKey, p.Token); err != nil {
		return err
	}

	if provider.Kind() == providers.KindOpen {
		switch p.EffectiveAuthMode() {
		case models.AuthToken:
			if strings.TrimSpace(p.Token) == "" {
				return fmt.Errorf("token auth mode requires a token")
			}
		case models.AuthReferrer:
			if strings.TrimSpace(p.Referrer) == "" {
				return fmt.Errorf("referrer auth mode requires a referrer")
			}
		}
	}

	// URL format validation
	if p.BaseURL != "" {
		if !utils.ValidateURL(p.BaseURL) {
			return fmt.Errorf("invalid URL format: %s", p.BaseURL)
		}
	}

	return nil
}

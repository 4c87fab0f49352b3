// Package compatibility checks that a profile's credentials work against its
// provider and categorizes HTTP failures into user-facing messages.
package compatibility

import "time"

// Error categories reported by credential checks
const (
	ErrorCategoryAuthFailure        = "authentication_failure"
	ErrorCategoryNotFound           = "not_found"
	ErrorCategoryRateLimit          = "rate_limit"
	ErrorCategoryServerError        = "server_error"
	ErrorCategoryNetworkError       = "network_error"
	ErrorCategoryUnexpectedListing  = "unexpected_listing"
	ErrorCategoryMissingCredentials = "missing_credentials"
	ErrorCategoryUnknown            = "unknown_error"
)

// Validation level constants
const (
	LevelFull    = "full"
	LevelPartial = "partial"
	LevelNone    = "none"
)

// Exit code constants
const (
	ExitCodeSuccess = 0
	ExitCodeFailure = 1
	ExitCodeWarning = 2
)

// Check names
const (
	CheckCredentials    = "Credentials"
	CheckConnection     = "Connection"
	CheckAuthentication = "Authentication"
	CheckImageModels    = "Image Models"
)

// Result represents the overall result of a credential check
type Result struct {
	Success      bool          `json:"success"`
	Level        string        `json:"level"` // "full", "partial", "none"
	Provider     string        `json:"provider"`
	Checks       []CheckResult `json:"checks"`
	Models       []string      `json:"models,omitempty"`
	ResponseTime time.Duration `json:"responseTimeMs"`
	Error        string        `json:"error,omitempty"`
}

// CheckResult represents the result of a single check
type CheckResult struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
	Critical bool   `json:"critical"`
}

// Check returns the named check, if it ran.
func (r *Result) Check(name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// DetermineLevel determines the validation level from check results.
// Returns the level and the appropriate exit code.
// - If all checks pass → "full" and exit code 0
// - If any critical check fails → "none" and exit code 1
// - If only non-critical checks fail → "partial" and exit code 2
func DetermineLevel(checks []CheckResult) (string, int) {
	if len(checks) == 0 {
		return LevelNone, ExitCodeFailure
	}

	hasNonCriticalFailure := false
	for _, check := range checks {
		if check.Passed {
			continue
		}
		if check.Critical {
			return LevelNone, ExitCodeFailure
		}
		hasNonCriticalFailure = true
	}

	if hasNonCriticalFailure {
		return LevelPartial, ExitCodeWarning
	}
	return LevelFull, ExitCodeSuccess
}

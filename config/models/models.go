package models

// AuthMode selects how requests to an open endpoint are authenticated.
type AuthMode string

const (
	AuthFree     AuthMode = "free"
	AuthReferrer AuthMode = "referrer"
	AuthToken    AuthMode = "token"
)

// Valid reports whether m is a known mode. The empty mode counts as free.
func (m AuthMode) Valid() bool {
	switch m {
	case "", AuthFree, AuthReferrer, AuthToken:
		return true
	}
	return false
}

// Profile represents a single provider profile
type Profile struct {
	Name      string   `yaml:"name"`
	Provider  string   `yaml:"provider"` // provider id, e.g. "pollinations"
	BaseURL   string   `yaml:"base_url"`
	APIKey    string   `yaml:"api_key,omitempty"`
	AuthMode  AuthMode `yaml:"auth_mode,omitempty"`
	Referrer  string   `yaml:"referrer,omitempty"`
	Token     string   `yaml:"token,omitempty"`
	Validated bool     `yaml:"validated"`
}

// EffectiveAuthMode returns the auth mode, defaulting to free.
func (p Profile) EffectiveAuthMode() AuthMode {
	if p.AuthMode == "" {
		return AuthFree
	}
	return p.AuthMode
}

// Settings holds optional overrides read from the secrets file
type Settings struct {
	MaxHistory     int    `yaml:"max_history,omitempty"`
	MaxFavorites   int    `yaml:"max_favorites,omitempty"`
	RequestTimeout string `yaml:"request_timeout,omitempty"` // Go duration, e.g. "90s"
	OutputDir      string `yaml:"output_dir,omitempty"`
}

// File represents the structure of the secrets file
type File struct {
	Active   string    `yaml:"active"`
	Profiles []Profile `yaml:"profiles"`
	Settings Settings  `yaml:"settings,omitempty"`
}

package config

import (
	"errors"
	"fmt"
	"sync"

	"imgstudio/config/models"
	"imgstudio/config/validation"
	"imgstudio/internal/providers"
)

// DefaultProfileName names the profile created when no secrets are configured.
const DefaultProfileName = "default-pollinations"

// NewProfileBaseName is the stem used for freshly created profiles.
const NewProfileBaseName = "new-profile"

var (
	ErrProfileNotFound = errors.New("profile does not exist")
	ErrProfileExists   = errors.New("profile already exists")
	ErrLastProfile     = errors.New("cannot delete the last remaining profile")
)

// DefaultProfile returns the free Pollinations profile.
func DefaultProfile() models.Profile {
	p := providers.MustGet(providers.Pollinations)
	return models.Profile{
		Name:      DefaultProfileName,
		Provider:  p.ID(),
		BaseURL:   p.DefaultBaseURL(),
		AuthMode:  models.AuthFree,
		Validated: true,
	}
}

// Manager holds provider profiles for the running process. Profiles keep
// their insertion order.
type Manager struct {
	mu       sync.Mutex
	profiles []models.Profile
	active   string
}

// NewManager seeds a manager from a secrets file. A nil or empty file yields
// the default profile. An unknown active name falls back to the first profile.
func NewManager(file *models.File) *Manager {
	m := &Manager{}
	if file != nil {
		for _, p := range file.Profiles {
			if p.Name == "" || m.indexOf(p.Name) >= 0 {
				continue
			}
			p.BaseURL = providers.BaseURLFor(p.Provider, p.BaseURL)
			m.profiles = append(m.profiles, p)
		}
		m.active = file.Active
	}
	if len(m.profiles) == 0 {
		m.profiles = []models.Profile{DefaultProfile()}
	}
	if m.indexOf(m.active) < 0 {
		m.active = m.profiles[0].Name
	}
	return m
}

func (m *Manager) indexOf(name string) int {
	for i, p := range m.profiles {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func notFound(name string) error {
	return fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
}

// List returns a copy of all profiles in insertion order
func (m *Manager) List() []models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Profile, len(m.profiles))
	copy(out, m.profiles)
	return out
}

// Names returns profile names in insertion order
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.profiles))
	for i, p := range m.profiles {
		names[i] = p.Name
	}
	return names
}

// Get returns a profile by name
func (m *Manager) Get(name string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return models.Profile{}, notFound(name)
	}
	return m.profiles[i], nil
}

// Active returns the active profile
func (m *Manager) Active() models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.profiles[m.indexOf(m.active)]
}

// ActiveName returns the active profile name
func (m *Manager) ActiveName() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active
}

// SetActive sets the active profile
func (m *Manager) SetActive(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(name) < 0 {
		return notFound(name)
	}
	m.active = name
	return nil
}

// Add validates and appends a new profile
func (m *Manager) Add(p models.Profile) error {
	if p.BaseURL == "" {
		if provider, err := providers.Get(p.Provider); err == nil {
			p.BaseURL = provider.DefaultBaseURL()
		}
	}
	if err := validation.NewValidator().ValidateProfile(p); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(p.Name) >= 0 {
		return fmt.Errorf("%w: '%s'", ErrProfileExists, p.Name)
	}
	m.profiles = append(m.profiles, p)
	return nil
}

// CreateProfile appends an unvalidated Pollinations profile under a fresh
// "new-profile" name and makes it active.
func (m *Manager) CreateProfile() models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := NewProfileBaseName
	for n := 1; m.indexOf(name) >= 0; n++ {
		name = fmt.Sprintf("%s_%d", NewProfileBaseName, n)
	}

	p := providers.MustGet(providers.Pollinations)
	profile := models.Profile{
		Name:     name,
		Provider: p.ID(),
		BaseURL:  p.DefaultBaseURL(),
		AuthMode: models.AuthFree,
	}
	m.profiles = append(m.profiles, profile)
	m.active = name
	return profile
}

// Save replaces the profile stored under oldName with p, renaming it when
// p.Name differs. The saved profile keeps its position and becomes active.
// Credentials that do not apply to the provider's kind are cleared.
func (m *Manager) Save(oldName string, p models.Profile) (models.Profile, error) {
	iv := validation.NewInputValidator()
	if err := iv.ValidateName(p.Name); err != nil {
		return models.Profile{}, err
	}
	if err := iv.ValidateURL(p.BaseURL); err != nil {
		return models.Profile{}, err
	}
	provider, err := providers.Get(p.Provider)
	if err != nil {
		return models.Profile{}, err
	}
	if !p.AuthMode.Valid() {
		return models.Profile{}, fmt.Errorf("invalid auth mode: %s", p.AuthMode)
	}
	p = normalize(provider, p)

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(oldName)
	if i < 0 {
		return models.Profile{}, notFound(oldName)
	}
	if p.Name != oldName && m.indexOf(p.Name) >= 0 {
		return models.Profile{}, fmt.Errorf("%w: '%s'", ErrProfileExists, p.Name)
	}
	m.profiles[i] = p
	m.active = p.Name
	return p, nil
}

func normalize(provider providers.Provider, p models.Profile) models.Profile {
	if p.BaseURL == "" {
		p.BaseURL = provider.DefaultBaseURL()
	}
	if provider.Kind() == providers.KindOpen {
		p.APIKey = ""
		p.AuthMode = p.EffectiveAuthMode()
		return p
	}
	p.AuthMode = models.AuthFree
	p.Referrer = ""
	p.Token = ""
	return p
}

// Remove deletes a profile. The last remaining profile cannot be removed.
// Removing the active profile activates the first remaining one.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return notFound(name)
	}
	if len(m.profiles) <= 1 {
		return ErrLastProfile
	}

	m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
	if m.active == name {
		m.active = m.profiles[0].Name
	}
	return nil
}

// SetValidated records the outcome of a credential check
func (m *Manager) SetValidated(name string, validated bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return notFound(name)
	}
	m.profiles[i].Validated = validated
	return nil
}

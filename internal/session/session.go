// Package session holds the in-memory state of one running client: profiles,
// generation history, favorites, discovered models and the in-progress flag.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"imgstudio/config"
	"imgstudio/config/models"
	"imgstudio/internal/catalog"
	"imgstudio/internal/generation"
	"imgstudio/internal/providers"
)

var (
	ErrFavoritesFull        = errors.New("favorites limit reached")
	ErrGenerationInProgress = errors.New("a generation is already in progress")
	ErrHistoryNotFound      = errors.New("history entry not found")
	ErrProfileNotValidated  = errors.New("profile is not validated")
)

// Metadata describes how a history entry was produced.
type Metadata struct {
	Size      string
	Provider  string
	Style     string
	Count     int
	ModelName string
	Options   generation.Options
}

// HistoryEntry records one successful generation.
type HistoryEntry struct {
	ID             string
	CreatedAt      time.Time
	Prompt         string
	NegativePrompt string
	Model          string
	Images         []string
	Metadata       Metadata
}

// Favorite is a single image saved from a history entry.
type Favorite struct {
	ID        string
	ImageB64  string
	CreatedAt time.Time
	HistoryID string
	Prompt    string
	Model     string
}

// FavoriteID returns the favorite key for image index of a history entry.
func FavoriteID(historyID string, index int) string {
	return fmt.Sprintf("%s_%d", historyID, index)
}

// Session is safe for use from the TUI's command goroutines.
type Session struct {
	mu sync.Mutex

	profiles     *config.Manager
	maxHistory   int
	maxFavorites int

	history          []HistoryEntry
	favorites        []Favorite
	discovered       catalog.Catalog
	selectedModel    string
	inProgress       bool
	lastGenerationAt time.Time

	now   func() time.Time
	newID func() string
}

// New creates a session over profiles. Non-positive caps fall back to defaults.
func New(profiles *config.Manager, settings config.Settings) *Session {
	if profiles == nil {
		profiles = config.NewManager(nil)
	}
	if settings.MaxHistory <= 0 {
		settings.MaxHistory = config.DefaultMaxHistory
	}
	if settings.MaxFavorites <= 0 {
		settings.MaxFavorites = config.DefaultMaxFavorites
	}
	return &Session{
		profiles:     profiles,
		maxHistory:   settings.MaxHistory,
		maxFavorites: settings.MaxFavorites,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Profiles returns the profile manager.
func (s *Session) Profiles() *config.Manager { return s.profiles }

// ActiveProfile returns the active profile.
func (s *Session) ActiveProfile() models.Profile { return s.profiles.Active() }

func (s *Session) resetModels() {
	s.discovered = catalog.Catalog{}
	s.selectedModel = ""
}

// SwitchProfile activates name and clears discovered models.
func (s *Session) SwitchProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profiles.SetActive(name); err != nil {
		return err
	}
	s.resetModels()
	return nil
}

// CreateProfile adds and activates a fresh profile.
func (s *Session) CreateProfile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profiles.CreateProfile()
	s.resetModels()
	return p
}

// SaveProfile stores an edited profile and activates it. Discovered models
// are cleared when the active profile changes identity or provider.
func (s *Session) SaveProfile(oldName string, p models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.profiles.Active()
	saved, err := s.profiles.Save(oldName, p)
	if err != nil {
		return models.Profile{}, err
	}
	if before.Name != oldName || before.Provider != saved.Provider || before.BaseURL != saved.BaseURL {
		s.resetModels()
	}
	return saved, nil
}

// RemoveProfile deletes a profile; the last one is refused.
func (s *Session) RemoveProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.profiles.ActiveName()
	if err := s.profiles.Remove(name); err != nil {
		return err
	}
	if s.profiles.ActiveName() != before {
		s.resetModels()
	}
	return nil
}

// AddHistory prepends a history entry and evicts the oldest beyond the cap.
func (s *Session) AddHistory(prompt, negativePrompt, model string, images []string, meta Metadata) HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := HistoryEntry{
		ID:             s.newID(),
		CreatedAt:      s.now(),
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
		Model:          model,
		Images:         append([]string(nil), images...),
		Metadata:       meta,
	}
	s.history = append([]HistoryEntry{entry}, s.history...)
	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
	return entry
}

// History returns entries newest first.
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]HistoryEntry(nil), s.history...)
}

// HistoryEntry returns the entry with id.
func (s *Session) HistoryEntry(id string) (HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.history {
		if e.ID == id {
			return e, true
		}
	}
	return HistoryEntry{}, false
}

// ClearHistory removes all history entries. Favorites are kept.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
}

// Variation returns request parameters that re-submit a history entry.
func (s *Session) Variation(historyID string) (generation.Params, error) {
	e, ok := s.HistoryEntry(historyID)
	if !ok {
		return generation.Params{}, fmt.Errorf("%w: %s", ErrHistoryNotFound, historyID)
	}
	count := e.Metadata.Count
	if count <= 0 {
		count = 1
	}
	return generation.Params{
		Prompt:         e.Prompt,
		NegativePrompt: e.NegativePrompt,
		Model:          e.Model,
		Size:           e.Metadata.Size,
		Count:          count,
		Options:        e.Metadata.Options,
	}, nil
}

func (s *Session) favoriteIndex(id string) int {
	for i, f := range s.favorites {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// AddFavorite saves image index of a history entry. Adding an existing
// favorite is a no-op; adding beyond the cap returns ErrFavoritesFull.
func (s *Session) AddFavorite(entry HistoryEntry, index int) error {
	if index < 0 || index >= len(entry.Images) {
		return fmt.Errorf("image index %d out of range", index)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := FavoriteID(entry.ID, index)
	if s.favoriteIndex(id) >= 0 {
		return nil
	}
	if len(s.favorites) >= s.maxFavorites {
		return ErrFavoritesFull
	}
	s.favorites = append(s.favorites, Favorite{
		ID:        id,
		ImageB64:  entry.Images[index],
		CreatedAt: s.now(),
		HistoryID: entry.ID,
		Prompt:    entry.Prompt,
		Model:     entry.Model,
	})
	return nil
}

// ToggleFavorite removes the favorite if present, otherwise adds it.
// It reports whether the image is a favorite afterwards.
func (s *Session) ToggleFavorite(entry HistoryEntry, index int) (bool, error) {
	if s.RemoveFavorite(FavoriteID(entry.ID, index)) {
		return false, nil
	}
	if err := s.AddFavorite(entry, index); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFavorite deletes a favorite and reports whether it existed.
func (s *Session) RemoveFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.favoriteIndex(id)
	if i < 0 {
		return false
	}
	s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
	return true
}

// IsFavorite reports whether id is saved.
func (s *Session) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.favoriteIndex(id) >= 0
}

// Favorites returns favorites newest first.
func (s *Session) Favorites() []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Favorite, len(s.favorites))
	for i, f := range s.favorites {
		out[len(out)-1-i] = f
	}
	return out
}

// ClearFavorites removes all favorites.
func (s *Session) ClearFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = nil
}

// SetDiscovered stores the latest discovery result.
func (s *Session) SetDiscovered(c catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discovered = c.Clone()
}

// Discovered returns the discovered models.
func (s *Session) Discovered() catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.discovered.Clone()
}

// Models returns the active provider's catalog merged with discovered models.
func (s *Session) Models() catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	return providers.MergeForProvider(s.profiles.Active().Provider, s.discovered)
}

// SelectModel picks a model from the merged catalog.
func (s *Session) SelectModel(id string) error {
	if !s.Models().Has(id) {
		return fmt.Errorf("model '%s' is not available for this profile", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedModel = id
	return nil
}

// SelectedModel returns the chosen model, or the first available one.
func (s *Session) SelectedModel() string {
	c := s.Models()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedModel != "" && c.Has(s.selectedModel) {
		return s.selectedModel
	}
	if d, ok := c.First(); ok {
		return d.ID
	}
	return ""
}

// BeginGeneration marks a generation as running.
func (s *Session) BeginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inProgress {
		return ErrGenerationInProgress
	}
	s.inProgress = true
	return nil
}

// EndGeneration clears the running flag and records the finish time.
func (s *Session) EndGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inProgress = false
	s.lastGenerationAt = s.now()
}

// InProgress reports whether a generation is running.
func (s *Session) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inProgress
}

// LastGenerationAt returns when the last generation finished.
func (s *Session) LastGenerationAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastGenerationAt
}

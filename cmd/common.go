package cmd

import (
	"fmt"
	"io"

	"imgstudio/config"
	"imgstudio/config/models"
	"imgstudio/internal/crypto"
)

// state is what every command loads from the secrets file.
type state struct {
	file     *models.File
	profiles *config.Manager
	settings config.Settings
}

// loadState is replaced in tests.
var loadState = func() (*state, error) {
	sf, err := config.LoadFile()
	if err != nil {
		return nil, err
	}
	settings, err := config.ResolveSettings(sf.Settings)
	if err != nil {
		return nil, err
	}
	return &state{file: sf, profiles: config.NewManager(sf), settings: settings}, nil
}

// profile returns the named profile, the --profile one, or the active one.
func (s *state) profile(name string) (models.Profile, error) {
	if name == "" {
		name = profileName
	}
	if name == "" {
		return s.profiles.Active(), nil
	}
	return s.profiles.Get(name)
}

// render writes the updated secrets document to w. The client never writes
// the secrets file itself.
func (s *state) render(w, notes io.Writer, encrypt bool) error {
	var enc config.Encrypter
	if encrypt {
		km, err := crypto.NewKeyManager()
		if err != nil {
			return err
		}
		enc = km
	}

	data, err := config.Render(s.profiles, s.file.Settings, enc)
	if err != nil {
		return err
	}
	if path, err := config.SecretsPath(); err == nil {
		fmt.Fprintf(notes, "# Save this document to %s to keep the change\n", path)
	}
	_, err = w.Write(data)
	return err
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"imgstudio/config/models"
	"imgstudio/internal/crypto"
)

// EnvSecrets overrides the secrets file location.
const EnvSecrets = "IMGSTUDIO_SECRETS"

// Decrypter reveals ENC:-prefixed values.
type Decrypter interface {
	Reveal(value string) (string, error)
}

// SecretsPath returns $IMGSTUDIO_SECRETS or the XDG location
// ($XDG_CONFIG_HOME/imgstudio/secrets.yaml, defaulting to ~/.config).
func SecretsPath() (string, error) {
	if p := os.Getenv(EnvSecrets); p != "" {
		return p, nil
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(xdgConfigHome, "imgstudio", "secrets.yaml"), nil
}

// LoadSecrets reads the secrets file under a shared lock. A missing or empty
// file yields an empty File. Encrypted values are revealed with dec; a nil
// dec leaves them untouched.
func LoadSecrets(path string, dec Decrypter) (*models.File, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0600)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", path).Debug("secrets file not found, using defaults")
			return &models.File{}, nil
		}
		return nil, fmt.Errorf("failed to open secrets file: %w", err)
	}
	defer file.Close()

	if err := lockFileShared(file); err != nil {
		return nil, fmt.Errorf("failed to lock secrets file: %w", err)
	}
	defer func() {
		if err := unlockFile(file); err != nil {
			log.WithError(err).Warn("failed to unlock secrets file")
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}
	return ParseSecrets(data, dec)
}

// ParseSecrets decodes secrets YAML and reveals encrypted credentials.
func ParseSecrets(data []byte, dec Decrypter) (*models.File, error) {
	var sf models.File
	if len(data) == 0 {
		return &sf, nil
	}
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}

	if dec == nil {
		return &sf, nil
	}
	for i := range sf.Profiles {
		p := &sf.Profiles[i]
		for _, field := range []*string{&p.APIKey, &p.Token, &p.Referrer} {
			plain, err := dec.Reveal(*field)
			if err != nil {
				return nil, fmt.Errorf("profile '%s': %w", p.Name, err)
			}
			*field = plain
		}
	}
	return &sf, nil
}

// LoadFile resolves the secrets path and reads the file, revealing
// encrypted values with the machine key manager.
func LoadFile() (*models.File, error) {
	path, err := SecretsPath()
	if err != nil {
		return nil, err
	}

	km, err := crypto.NewKeyManager()
	if err != nil {
		return nil, err
	}
	return LoadSecrets(path, km)
}

// Load reads the secrets file and builds the profile manager and settings
// from it.
func Load() (*Manager, Settings, error) {
	sf, err := LoadFile()
	if err != nil {
		return nil, Settings{}, err
	}

	settings, err := ResolveSettings(sf.Settings)
	if err != nil {
		return nil, Settings{}, err
	}
	return NewManager(sf), settings, nil
}

// Encrypter seals credential values for Render.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
}

// Render serializes the manager's profiles and raw settings as a secrets
// document. Non-empty credentials are sealed with enc when it is non-nil.
func Render(m *Manager, settings models.Settings, enc Encrypter) ([]byte, error) {
	sf := models.File{
		Active:   m.ActiveName(),
		Profiles: m.List(),
		Settings: settings,
	}
	if enc != nil {
		for i := range sf.Profiles {
			p := &sf.Profiles[i]
			for _, field := range []*string{&p.APIKey, &p.Token} {
				if *field == "" || crypto.IsEncrypted(*field) {
					continue
				}
				sealed, err := enc.Encrypt(*field)
				if err != nil {
					return nil, fmt.Errorf("profile '%s': %w", p.Name, err)
				}
				*field = sealed
			}
		}
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return nil, fmt.Errorf("failed to render secrets file: %w", err)
	}
	return data, nil
}

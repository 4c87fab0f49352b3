// Package crypto encrypts and decrypts credentials stored in the secrets file.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"
)

// EncryptedPrefix is the prefix used to identify encrypted values
const EncryptedPrefix = "ENC:"

// EnvPassphrase overrides the machine-derived key when set.
const EnvPassphrase = "IMGSTUDIO_SECRET_KEY"

// KeyManager handles encryption and decryption of credentials
type KeyManager struct {
	key []byte
}

// NewKeyManager creates a KeyManager keyed by $IMGSTUDIO_SECRET_KEY, or by
// machine-specific data when the variable is unset.
func NewKeyManager() (*KeyManager, error) {
	if pass := os.Getenv(EnvPassphrase); pass != "" {
		return NewKeyManagerFromPassphrase(pass), nil
	}

	key, err := deriveKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}
	return &KeyManager{key: key}, nil
}

// NewKeyManagerFromPassphrase derives a 32-byte key from pass
func NewKeyManagerFromPassphrase(pass string) *KeyManager {
	hash := sha256.Sum256([]byte(pass))
	return &KeyManager{key: hash[:]}
}

// deriveKey generates an encryption key based on machine-specific data
func deriveKey() ([]byte, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	seed := fmt.Sprintf("%s-%s-imgstudio-secrets-key-v1", homeDir, hostname)
	hash := sha256.Sum256([]byte(seed))
	return hash[:], nil
}

func (km *KeyManager) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(km.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt encrypts plaintext and returns it with the ENC: prefix
func (km *KeyManager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := km.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return EncryptedPrefix + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts an ENC: value. The prefix is optional.
func (km *KeyManager) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data := strings.TrimPrefix(ciphertext, EncryptedPrefix)
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	gcm, err := km.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(decoded) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertextBytes := decoded[:nonceSize], decoded[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}

// Reveal decrypts value when it carries the ENC: prefix and returns it
// unchanged otherwise.
func (km *KeyManager) Reveal(value string) (string, error) {
	if !strings.HasPrefix(value, EncryptedPrefix) {
		return value, nil
	}
	return km.Decrypt(value)
}

// IsEncrypted checks if a string appears to be encrypted
func IsEncrypted(value string) bool {
	if !strings.HasPrefix(value, EncryptedPrefix) {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, EncryptedPrefix))
	if err != nil {
		return false
	}

	// 12-byte GCM nonce plus ciphertext and tag
	return len(decoded) >= 20
}

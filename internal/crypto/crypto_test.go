package crypto

import (
	"strings"
	"testing"
)

func TestKeyManager(t *testing.T) {
	t.Setenv(EnvPassphrase, "")
	km, err := NewKeyManager()
	if err != nil {
		t.Fatalf("Failed to create KeyManager: %v", err)
	}

	t.Run("Encrypt and Decrypt", func(t *testing.T) {
		testCases := []struct {
			name      string
			plaintext string
		}{
			{"Empty string", ""},
			{"Hugging Face token", "hf_abcdefghijklmnopqrstuvwxyz"},
			{"Compatible API key", "sk-proj-verylongfakekey1234567890abcdefghijklmnop"},
			{"Pollinations referrer", "https://studio.example.dev/"},
			{"Unicode characters", "token-🔑-画像"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				encrypted, err := km.Encrypt(tc.plaintext)
				if err != nil {
					t.Fatalf("Encrypt failed: %v", err)
				}

				if tc.plaintext == "" {
					if encrypted != "" {
						t.Errorf("Expected empty ciphertext for empty plaintext, got %q", encrypted)
					}
					return
				}

				if !strings.HasPrefix(encrypted, EncryptedPrefix) {
					t.Errorf("Encrypted value %q lacks %s prefix", encrypted, EncryptedPrefix)
				}

				decrypted, err := km.Decrypt(encrypted)
				if err != nil {
					t.Fatalf("Decrypt failed: %v", err)
				}
				if decrypted != tc.plaintext {
					t.Errorf("Decrypted value %q doesn't match original %q", decrypted, tc.plaintext)
				}
			})
		}
	})

	t.Run("Random nonce", func(t *testing.T) {
		e1, _ := km.Encrypt("hf_same")
		e2, _ := km.Encrypt("hf_same")
		if e1 == e2 {
			t.Errorf("Same plaintext produced identical ciphertexts")
		}
	})

	t.Run("Invalid ciphertext", func(t *testing.T) {
		for _, invalid := range []string{"ENC:not-base64!@#$", "ENC:aGVsbG8=", "invalid"} {
			if _, err := km.Decrypt(invalid); err == nil {
				t.Errorf("Expected error when decrypting invalid ciphertext %q", invalid)
			}
		}
	})
}

func TestPassphraseKeys(t *testing.T) {
	a := NewKeyManagerFromPassphrase("correct horse")
	b := NewKeyManagerFromPassphrase("correct horse")
	other := NewKeyManagerFromPassphrase("battery staple")

	encrypted, err := a.Encrypt("sk-navy-123")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if got, err := b.Decrypt(encrypted); err != nil || got != "sk-navy-123" {
		t.Errorf("Decrypt with same passphrase = %q, %v", got, err)
	}
	if _, err := other.Decrypt(encrypted); err == nil {
		t.Error("Decrypt with a different passphrase succeeded")
	}

	t.Setenv(EnvPassphrase, "correct horse")
	fromEnv, err := NewKeyManager()
	if err != nil {
		t.Fatalf("NewKeyManager failed: %v", err)
	}
	if got, _ := fromEnv.Decrypt(encrypted); got != "sk-navy-123" {
		t.Errorf("env passphrase key did not decrypt, got %q", got)
	}
}

func TestReveal(t *testing.T) {
	km := NewKeyManagerFromPassphrase("k")
	encrypted, _ := km.Encrypt("hf_secret")

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"plaintext passes through", "sk-plain", "sk-plain", false},
		{"empty", "", "", false},
		{"encrypted", encrypted, "hf_secret", false},
		{"corrupt", "ENC:@@@", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := km.Reveal(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Reveal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Reveal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsEncrypted(t *testing.T) {
	km := NewKeyManagerFromPassphrase("k")
	encrypted, _ := km.Encrypt("sk-test")

	tests := []struct {
		value string
		want  bool
	}{
		{encrypted, true},
		{"sk-test", false},
		{"", false},
		{"ENC:aGVsbG8=", false},
		{"ENC:!!!", false},
	}

	for _, tt := range tests {
		if got := IsEncrypted(tt.value); got != tt.want {
			t.Errorf("IsEncrypted(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestKeyDerivation(t *testing.T) {
	key1, err := deriveKey()
	if err != nil {
		t.Fatalf("First key derivation failed: %v", err)
	}
	key2, _ := deriveKey()

	if string(key1) != string(key2) {
		t.Errorf("Key derivation is not consistent")
	}
	if len(key1) != 32 {
		t.Errorf("Expected 32-byte key, got %d bytes", len(key1))
	}
}

func BenchmarkDecrypt(b *testing.B) {
	km := NewKeyManagerFromPassphrase("bench")
	encrypted, _ := km.Encrypt("sk-benchmark-key-123456789")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = km.Decrypt(encrypted)
	}
}

package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "journal"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the keyring, for headless machines without a secret service
	EnvKey = "JOURNAL_DB_KEY"
)

// ErrKeyNotFound is returned when neither the environment nor the keyring hold a key
var ErrKeyNotFound = errors.New("encryption key not found")

type systemKeyring struct{}

// NewKeyring returns a Keyring backed by the OS secret store
// (Keychain, Secret Service or Windows Credential Manager).
func NewKeyring() Keyring {
	return &systemKeyring{}
}

// GetKey returns JOURNAL_DB_KEY if set, otherwise the stored key
func (k *systemKeyring) GetKey() (string, error) {
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}
	if key == "" {
		return "", ErrKeyNotFound
	}

	return key, nil
}

// SetKey stores the encryption key in the OS keyring
func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring (set %s instead): %w", EnvKey, err)
	}

	return nil
}

// DeleteKey removes the encryption key from the OS keyring
func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}

	return nil
}

// IsAvailable checks if the keyring is accessible
func (k *systemKeyring) IsAvailable() bool {
	testKey := "__journal_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testKey)
	return true
}

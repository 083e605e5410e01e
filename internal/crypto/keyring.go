package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring stores the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "quotepad"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the system keyring, for headless machines and CI
	EnvKey = "QUOTEPAD_DB_KEY"
)

// ErrKeyNotFound is returned when no key has been stored yet
var ErrKeyNotFound = errors.New("encryption key not found")

// NewKeyring prefers QUOTEPAD_DB_KEY and falls back to the system keyring.
func NewKeyring() Keyring {
	return &chain{env: envKeyring{name: EnvKey}, system: systemKeyring{}}
}

// chain reads from the environment first and stores into the system keyring
type chain struct {
	env    envKeyring
	system systemKeyring
}

func (c *chain) GetKey() (string, error) {
	if c.env.IsAvailable() {
		return c.env.GetKey()
	}
	return c.system.GetKey()
}

func (c *chain) SetKey(password string) error {
	if !c.system.IsAvailable() {
		return c.env.SetKey(password)
	}
	return c.system.SetKey(password)
}

func (c *chain) DeleteKey() error {
	return c.system.DeleteKey()
}

func (c *chain) IsAvailable() bool {
	return c.env.IsAvailable() || c.system.IsAvailable()
}

// systemKeyring uses the OS credential store (Keychain, Secret Service,
// Windows Credential Manager)
type systemKeyring struct{}

func (systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}
	if key == "" {
		return "", errors.New("encryption key is empty")
	}
	return key, nil
}

func (systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}
	return nil
}

func (systemKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks the store with a throwaway entry
func (systemKeyring) IsAvailable() bool {
	testKey := "__quotepad_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}

// envKeyring reads the key from an environment variable
type envKeyring struct {
	name string
}

func (k envKeyring) GetKey() (string, error) {
	key := os.Getenv(k.name)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set: %w", k.name, ErrKeyNotFound)
	}
	return key, nil
}

func (k envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("no system keyring available: set %s in the environment or a .env file", k.name)
}

func (k envKeyring) DeleteKey() error {
	return fmt.Errorf("no system keyring available: unset %s manually", k.name)
}

func (k envKeyring) IsAvailable() bool {
	return os.Getenv(k.name) != ""
}

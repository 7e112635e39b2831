// Package keychain stores generation-service API keys in the OS credential store.
package keychain

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain namespace.
const ServiceName = "excel-pdf-automator"

// ErrNotFound is returned when no key is stored for a provider.
var ErrNotFound = errors.New("no API key stored")

// Manager provides thread-safe access to stored API keys.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the OS keyring.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("secure storage unavailable: %w", err)
	}
	return ring, nil
}

func itemKey(provider string) string {
	return "api_key_" + provider
}

// SaveAPIKey stores the key for provider, replacing any previous one.
func (m *Manager) SaveAPIKey(provider, key string) error {
	if key == "" {
		return errors.New("empty API key")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         itemKey(provider),
		Data:        []byte(key),
		Label:       ServiceName + " " + provider,
		Description: "API key for the " + provider + " generation service",
	})
}

// LoadAPIKey returns the stored key for provider, or ErrNotFound.
func (m *Manager) LoadAPIKey(provider string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(itemKey(provider))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w for %s", ErrNotFound, provider)
	}
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNotFound, provider)
	}
	return string(it.Data), nil
}

// ClearAPIKey removes the stored key for provider. Removing a missing key is not an error.
func (m *Manager) ClearAPIKey(provider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ring.Remove(itemKey(provider))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

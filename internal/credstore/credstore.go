// Package credstore wraps the single opaque bearer token in durable
// client-side storage. It is pure key/value with no backend awareness: the
// token exists from a successful login or registration until explicit logout
// or a failed profile resolution.
package credstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// Store is the credential storage contract. It is injected by reference into
// the API gateway and the session controller so tests can substitute a fake.
type Store interface {
	// Token returns the stored credential and whether one exists.
	Token() (string, bool)
	// Save replaces the stored credential.
	Save(token string) error
	// Clear removes the stored credential. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore persists the token in a single file with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token reads the stored credential from disk.
func (f *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Save writes the credential with 0600 permissions.
func (f *FileStore) Save(token string) error {
	if token == "" {
		return fmt.Errorf("cannot save empty token")
	}
	if err := os.WriteFile(f.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Clear removes the credential file. Missing file is not an error.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty MemoryStore, optionally seeded with a token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Token returns the stored credential and whether one exists.
func (m *MemoryStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// Save replaces the stored credential.
func (m *MemoryStore) Save(token string) error {
	if token == "" {
		return fmt.Errorf("cannot save empty token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Clear removes the stored credential.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

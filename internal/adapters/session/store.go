// Package session persists the signed-in user as a JSON file.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileProvider implements ports.UserProvider on top of a JSON file. The file is
// read on every call so sign-ins from other processes are picked up.
type FileProvider struct {
	path string
	mu   sync.RWMutex
}

// NewFileProvider creates a provider backed by the file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: filepath.Clean(path)}
}

// Path returns the backing file.
func (p *FileProvider) Path() string {
	return p.path
}

// CurrentUser returns the stored user. A missing or empty file, or one holding
// JSON null, means nobody is signed in.
func (p *FileProvider) CurrentUser(_ context.Context) (*domain.User, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrNoActiveSession, "session file missing"), "path", p.path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, err.Error()), "path", p.path)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoActiveSession, "session file empty"), "path", p.path)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, "failed to unmarshal session"), "path", p.path)
	}
	return &user, nil
}

// Save stores user, replacing the file atomically.
func (p *FileProvider) Save(user *domain.User) error {
	if user == nil {
		return p.Clear()
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal session")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(data)
}

// Clear signs the user out. Clearing an absent session is not an error.
func (p *FileProvider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.Remove(p.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, err.Error()), "path", p.path)
	}
	return nil
}

// write must be called with mu held for writing.
func (p *FileProvider) write(data []byte) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, "failed to create session directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, "failed to create temp file"), "path", dir)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, "failed to write session"), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, "failed to close session"), "path", tmpName)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSessionStoreFailed, "failed to replace session"), "path", p.path)
	}
	return nil
}

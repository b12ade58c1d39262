// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TrustFileName is the name of the trust store file in the config directory.
const TrustFileName = "trust.toml"

type (
	// TrustStore is the on-disk record of directories the user has approved
	// for project types whose marker files can execute code when loaded.
	// A trusted entry covers the directory itself and everything beneath it.
	TrustStore struct {
		// Directories are cleaned absolute paths of trusted trees.
		Directories []string `toml:"directories"`

		// path the store was loaded from; empty for in-memory stores.
		path string
	}
)

// TrustFilePath returns the location of the trust store file.
func TrustFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TrustFileName), nil
}

// LoadTrustStore reads the trust store from the config directory.
// A missing file yields an empty store, not an error.
func LoadTrustStore() (*TrustStore, error) {
	path, err := TrustFilePath()
	if err != nil {
		return nil, err
	}
	return LoadTrustStoreFrom(path)
}

// LoadTrustStoreFrom reads a trust store from an explicit path.
// A missing file yields an empty store, not an error.
func LoadTrustStoreFrom(path string) (*TrustStore, error) {
	store := &TrustStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read trust store: %w", err)
	}

	if err := toml.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("failed to parse trust store %s: %w", path, err)
	}

	return store, nil
}

// IsTrusted reports whether dir is inside a trusted tree.
// The path is cleaned before comparison; matching is prefix-based on whole
// path components, so /src/app does not cover /src/application.
func (s *TrustStore) IsTrusted(dir string) bool {
	candidate := filepath.Clean(dir)
	for _, trusted := range s.Directories {
		t := filepath.Clean(trusted)
		if candidate == t {
			return true
		}
		if strings.HasPrefix(candidate, t+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Add records dir as trusted. Returns false if dir was already covered by
// an existing entry.
func (s *TrustStore) Add(dir string) bool {
	if s.IsTrusted(dir) {
		return false
	}
	s.Directories = append(s.Directories, filepath.Clean(dir))
	return true
}

// Remove deletes the exact entry for dir. Returns false if no exact entry
// exists (entries covering dir as a parent are left alone).
func (s *TrustStore) Remove(dir string) bool {
	target := filepath.Clean(dir)
	for i, trusted := range s.Directories {
		if filepath.Clean(trusted) == target {
			s.Directories = append(s.Directories[:i], s.Directories[i+1:]...)
			return true
		}
	}
	return false
}

// Save writes the store back to the path it was loaded from.
// The file is user-private: trust decisions are a security boundary.
func (s *TrustStore) Save() error {
	if s.path == "" {
		return errors.New("trust store has no backing path")
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode trust store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write trust store: %w", err)
	}

	return nil
}

// Package credstore keeps the secrets referenced by provider sections.
// The document engine only ever sees env var names; the values live here,
// in a mode-0600 JSON file under the ccjk home dir.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	"golang.org/x/term"
)

const credFileName = "credentials.json"

// ErrNotFound indicates no secret is stored under the requested name.
var ErrNotFound = errors.New("credential not found")

// Store reads and writes the credential file in one directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, credFileName)
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	creds := map[string]string{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

func (s *Store) save(creds map[string]string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}

// Get returns the secret stored under envVar.
func (s *Store) Get(envVar string) (string, error) {
	creds, err := s.load()
	if err != nil {
		return "", err
	}
	secret, ok := creds[envVar]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, envVar)
	}
	return secret, nil
}

// Set stores a secret under envVar.
func (s *Store) Set(envVar, secret string) error {
	creds, err := s.load()
	if err != nil {
		return err
	}
	creds[envVar] = secret
	return s.save(creds)
}

// Delete removes the secret stored under envVar. Deleting an absent name
// is not an error.
func (s *Store) Delete(envVar string) error {
	creds, err := s.load()
	if err != nil {
		return err
	}
	delete(creds, envVar)
	return s.save(creds)
}

// Names returns the stored env var names in sorted order, never the
// secrets themselves.
func (s *Store) Names() ([]string, error) {
	creds, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(creds))
	for name := range creds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// PromptSecret reads a secret from the terminal without echo.
func PromptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(secret), nil
}

package google

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenStore reads and writes the persisted provider token set. It is plain
// file access; validity of the stored token is only discovered on first use.
type TokenStore struct {
	path string
}

// NewTokenStore returns a store at the default credentials path, honoring
// the GMAIL_CREDENTIALS_PATH environment override.
func NewTokenStore() *TokenStore {
	if p := os.Getenv("GMAIL_CREDENTIALS_PATH"); p != "" {
		return &TokenStore{path: p}
	}
	return &TokenStore{path: filepath.Join(ConfigDir(), CredentialsFileName)}
}

// NewTokenStoreAt returns a store backed by an explicit file path.
func NewTokenStoreAt(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Path returns the credentials file path.
func (s *TokenStore) Path() string {
	return s.path
}

// Has reports whether a persisted token set exists.
func (s *TokenStore) Has() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the persisted token set.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode credentials file %s: %w", s.path, err)
	}
	return token, nil
}

// Save writes the token set, creating the config directory if needed.
// The file is written with owner-only permissions.
func (s *TokenStore) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token set: %w", err)
	}
	return nil
}

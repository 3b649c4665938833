// ABOUTME: Stored API credentials keyed by API base URL
// ABOUTME: Reads/writes ~/.parity/credentials.json with 0600 permissions

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Credentials holds API keys saved by "parity login".
type Credentials struct {
	Keys map[string]string `json:"keys"` // base URL -> api key
	path string
	mu   sync.Mutex
}

// LoadCredentials reads the credentials file at path, or returns an empty
// store if it does not exist. An empty path uses CredentialsFile().
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		path = CredentialsFile()
	}
	c := &Credentials{Keys: make(map[string]string), path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing credentials %s: %w", path, err)
	}
	if c.Keys == nil {
		c.Keys = make(map[string]string)
	}
	return c, nil
}

// Save writes the store with restricted permissions.
func (c *Credentials) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Key returns the stored key for baseURL, or "".
func (c *Credentials) Key(baseURL string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Keys[credentialKey(baseURL)]
}

// SetKey stores key for baseURL.
func (c *Credentials) SetKey(baseURL, key string) {
	c.mu.Lock()
	c.Keys[credentialKey(baseURL)] = key
	c.mu.Unlock()
}

// Remove deletes the key for baseURL and reports whether one existed.
func (c *Credentials) Remove(baseURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := credentialKey(baseURL)
	_, ok := c.Keys[k]
	delete(c.Keys, k)
	return ok
}

// credentialKey folds trailing slashes and a trailing /v1 so equivalent
// base URLs share one entry.
func credentialKey(baseURL string) string {
	k := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	k = strings.TrimSuffix(k, "/v1")
	return strings.TrimRight(k, "/")
}

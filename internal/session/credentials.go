package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskManager/internal/models/task"
)

// Storage keys, kept from the original client. Both files are written and
// removed together; a credential without an identity is treated as absent.
const (
	tokenFile = "taskManagerToken"
	userFile  = "taskManagerUser"
)

// Credentials persists the bearer token and the minimal identity as two flat
// files under dir. It doubles as the api.TokenSource for outbound requests.
type Credentials struct {
	dir string
}

func NewCredentials(dir string) *Credentials {
	return &Credentials{dir: dir}
}

// Token returns the stored credential, or "" when none is persisted.
func (c *Credentials) Token() string {
	data, err := os.ReadFile(filepath.Join(c.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// User returns the stored identity, if both it and the token are present.
func (c *Credentials) User() (task.User, bool) {
	if c.Token() == "" {
		return task.User{}, false
	}
	data, err := os.ReadFile(filepath.Join(c.dir, userFile))
	if err != nil {
		return task.User{}, false
	}
	var u task.User
	if err := json.Unmarshal(data, &u); err != nil {
		return task.User{}, false
	}
	return u, true
}

// Store persists the credential pair.
func (c *Credentials) Store(token string, u task.User) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, userFile), data, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// Clear removes both files. Missing files are not an error.
func (c *Credentials) Clear() {
	os.Remove(filepath.Join(c.dir, tokenFile))
	os.Remove(filepath.Join(c.dir, userFile))
}

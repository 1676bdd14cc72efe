// Package session reads the signed-in user stored by the web client.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexanderramin/freightdesk/internal/domain"
)

// Load reads the session file at path. A missing file yields an anonymous
// session. The file holds either {"user": {...}} or the user object itself.
func Load(path string) (domain.Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("reading session: %w", err)
	}
	return Parse(data)
}

// Parse decodes a session document. Empty input is anonymous.
func Parse(data []byte) (domain.Session, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return domain.Session{}, nil
	}

	var wrapped struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return domain.Session{}, fmt.Errorf("decoding session: %w", err)
	}
	if len(wrapped.User) > 0 && !bytes.Equal(wrapped.User, []byte("null")) {
		data = wrapped.User
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

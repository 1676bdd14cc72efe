package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsAnonymous(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.True(t, s.IsAnonymous())
}

func TestLoad_WrappedUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"userID":3,"companyId":7,"userName":"alice"},"token":"x"}`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Session{UserID: 3, CompanyID: 7, UserName: "alice"}, s)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.Session
	}{
		{"bare object", `{"userId":4,"companyId":1,"userName":"bob"}`, domain.Session{UserID: 4, CompanyID: 1, UserName: "bob"}},
		{"email fallback", `{"userId":5,"email":"c@example.com"}`, domain.Session{UserID: 5, UserName: "c@example.com"}},
		{"empty", "  ", domain.Session{}},
		{"null user", `{"user":null,"userId":6}`, domain.Session{UserID: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"user":`))
	assert.Error(t, err)
}

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session"), []byte("test-secret"))
}

func TestCurrent_NoSessionFile(t *testing.T) {
	s := newStore(t)

	user, err := s.Current()
	require.NoError(t, err)
	assert.Empty(t, user)
}

func TestSaveAndCurrent(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save("alice"))

	user, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
}

func TestSave_OverwritesPreviousIdentity(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save("alice"))
	require.NoError(t, s.Save("bob"))

	user, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "bob", user)
}

func TestClear_Idempotent(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save("alice"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	user, err := s.Current()
	require.NoError(t, err)
	assert.Empty(t, user)
}

func TestCurrent_TamperedTokenReadsAsLoggedOut(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save("alice"))

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(s.path, data, 0o600))

	user, err := s.Current()
	require.NoError(t, err)
	assert.Empty(t, user)
}

func TestCurrent_WrongSecretReadsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, NewStore(path, []byte("secret-a")).Save("alice"))

	user, err := NewStore(path, []byte("secret-b")).Current()
	require.NoError(t, err)
	assert.Empty(t, user)
}

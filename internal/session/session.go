// Package session persists the process-wide "currently authenticated
// identity" across CLI invocations. The identity is written to a file in the
// app directory as an HS256-signed token, so a corrupted or hand-edited
// session file reads back as logged out instead of as someone else.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"time"

	"github.com/golang-jwt/jwt/v5"
)

// nowFn is a test seam for the token issue time.
var nowFn = time.Now

// Claims carries the authenticated username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Store reads and writes the session file. Exactly one identity is active at
// a time: Save overwrites, Clear removes.
type Store struct {
	path   string
	secret []byte
}

func NewStore(path string, secret []byte) *Store {
	return &Store{path: path, secret: secret}
}

// Save records username as the current identity, replacing any previous one.
// The file is written atomically (temp file + rename).
func (s *Store) Save(username string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(nowFn()),
		},
		Username: username,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o770); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(tmp, []byte(signed), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Current returns the logged-in username, or "" when no one is logged in.
// A missing, unreadable or tampered session file counts as logged out.
func (s *Store) Current() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read session file: %w", err)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(string(data), claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", nil
	}
	return claims.Username, nil
}

// Clear logs out unconditionally; clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

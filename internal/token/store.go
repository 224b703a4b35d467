package token

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// tokenFile is the well-known key the frontend stored the token under.
const tokenFile = "authToken"

// Store persists the single bearer token that outlives the process.
type Store interface {
	Current() string
	Save(tok string) error
	Clear() error
}

// FileStore keeps the token in one file under dir. The file holds the raw
// token string and nothing else.
type FileStore struct {
	mu   sync.RWMutex
	path string
	tok  string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("token dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	s := &FileStore{path: filepath.Join(dir, tokenFile)}
	b, err := os.ReadFile(s.path)
	if err == nil {
		s.tok = strings.TrimSpace(string(b))
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

func (s *FileStore) Save(tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(tok), 0o600); err != nil {
		return err
	}
	s.tok = tok
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	s.tok = ""
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu  sync.RWMutex
	tok string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

func (s *MemStore) Save(tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = ""
	return nil
}

// Expired reports whether tok carries an exp claim in the past. Claims are
// parsed without signature verification; only the backend holds the signing
// secret. A malformed token counts as expired, a token without exp does not.
func Expired(tok string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

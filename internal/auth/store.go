package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wichananm65/gadget-shop-dashboard/internal/token"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrNameRequired     = errors.New("name is required")
	ErrNotSignedIn      = errors.New("not signed in")
)

// Backend is the slice of the shop API the auth store needs.
type Backend interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	Register(ctx context.Context, creds Credentials) (Session, error)
	CurrentUser(ctx context.Context) (User, error)
	Logout() error
}

// Store holds the current session. All state is guarded by mu so callers may
// use one Store from multiple goroutines.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	tokens  token.Store
	log     zerolog.Logger

	user    *User
	loading bool
	lastErr string
}

func NewStore(backend Backend, tokens token.Store, log zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		tokens:  tokens,
		log:     log,
	}
}

// CurrentUser returns the signed-in user, if any.
func (s *Store) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed operation. It sticks until
// ClearError is called; a newer failure replaces it.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// SignIn authenticates against the backend and stores the returned user. An
// existing session is left untouched on failure.
func (s *Store) SignIn(ctx context.Context, creds Credentials) error {
	if err := validateCredentials(creds, false); err != nil {
		s.fail(err)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.user = &session.User
	s.mu.Unlock()

	s.log.Info().Str("email", session.User.Email).Msg("signed in")
	return nil
}

// SignUp registers a new account and signs it in.
func (s *Store) SignUp(ctx context.Context, creds Credentials) error {
	if err := validateCredentials(creds, true); err != nil {
		s.fail(err)
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.backend.Register(ctx, creds)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.user = &session.User
	s.mu.Unlock()

	s.log.Info().Str("email", session.User.Email).Msg("signed up")
	return nil
}

// SignOut drops the in-memory user and the persisted token. It is synchronous
// and never requires a network round trip.
func (s *Store) SignOut() {
	s.mu.Lock()
	s.user = nil
	s.lastErr = ""
	s.mu.Unlock()

	if err := s.backend.Logout(); err != nil {
		s.log.Warn().Err(err).Msg("could not clear persisted token")
	}
}

// Restore rebuilds the session from a persisted token at startup. A missing,
// expired or rejected token clears silently; no error message is recorded.
func (s *Store) Restore(ctx context.Context) error {
	tok := s.tokens.Current()
	if tok == "" {
		return nil
	}
	if token.Expired(tok) {
		s.log.Debug().Msg("persisted token expired, clearing")
		return s.tokens.Clear()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.backend.CurrentUser(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("persisted token rejected, clearing")
		return s.tokens.Clear()
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.log.Info().Str("email", user.Email).Msg("session restored")
	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

func validateCredentials(creds Credentials, signUp bool) error {
	if strings.TrimSpace(creds.Email) == "" {
		return ErrEmailRequired
	}
	if creds.Password == "" {
		return ErrPasswordRequired
	}
	if signUp && strings.TrimSpace(creds.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

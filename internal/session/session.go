// Package session keeps the signed-in demo user between invocations. It is
// a convenience for picking a portal and performs no authorization.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/paydesk/paydesk/internal/portal"
)

// ErrNoSession is returned when nobody is signed in.
var ErrNoSession = errors.New("no active session: run 'paydesk login' first")

// ErrInvalidUser is returned by Login for a blank user name.
var ErrInvalidUser = errors.New("user name must not be empty")

// Session is the signed-in user.
type Session struct {
	ID       string      `yaml:"id"        json:"id"`
	User     string      `yaml:"user"      json:"user"`
	Role     portal.Role `yaml:"role"      json:"role"`
	IssuedAt time.Time   `yaml:"issued_at" json:"issued_at"`
}

// Store persists the session as a YAML file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted session. A missing file yields ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", s.path, err)
	}
	if _, err := portal.ParseRole(string(sess.Role)); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.path, err)
	}
	return &sess, nil
}

// Login starts a new session for user with role and persists it, replacing
// any previous one.
func (s *Store) Login(user string, role portal.Role) (*Session, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, ErrInvalidUser
	}
	if _, err := portal.ParseRole(string(role)); err != nil {
		return nil, err
	}
	sess := &Session{
		ID:       uuid.NewString(),
		User:     user,
		Role:     role,
		IssuedAt: s.now().UTC().Truncate(time.Second),
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing session: %w", err)
	}
	return sess, nil
}

// Logout removes the persisted session. It reports whether one existed.
func (s *Store) Logout() (bool, error) {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("removing session: %w", err)
	}
	return true, nil
}

type sessionKey struct{}

// WithSession stores sess in ctx.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the session stored in ctx.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}

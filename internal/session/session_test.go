package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/paydesk/internal/portal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "nested", "session.yaml"))
	s.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 15, 500, time.UTC) }
	return s
}

func TestStore_LoginLoadLogout(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrNoSession)

	sess, err := s.Login("  ada ", portal.RolePartnerBank)
	require.NoError(t, err)
	assert.Equal(t, "ada", sess.User)
	_, err = uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 8, 30, 15, 0, time.UTC), sess.IssuedAt)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	existed, err := s.Logout()
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Logout()
	require.NoError(t, err)
	assert.False(t, existed)

	_, err = s.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestStore_LoginReplaces(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	first, err := s.Login("ada", portal.RoleAdmin)
	require.NoError(t, err)
	second, err := s.Login("grace", portal.RoleMerchant)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "grace", loaded.User)
	assert.Equal(t, portal.RoleMerchant, loaded.Role)
}

func TestStore_LoginValidation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Login(" ", portal.RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidUser)

	_, err = s.Login("ada", portal.Role("root"))
	require.ErrorIs(t, err, portal.ErrUnknownRole)
}

func TestStore_LoadRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))

	require.NoError(t, os.WriteFile(s.Path(), []byte("user: [unterminated"), 0o600))
	_, err := s.Load()
	require.Error(t, err)

	require.NoError(t, os.WriteFile(s.Path(), []byte("user: ada\nrole: superuser\n"), 0o600))
	_, err = s.Load()
	require.ErrorIs(t, err, portal.ErrUnknownRole)
}

func TestContext(t *testing.T) {
	t.Parallel()

	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	sess := &Session{User: "ada", Role: portal.RoleAdmin}
	got, ok := FromContext(WithSession(context.Background(), sess))
	require.True(t, ok)
	assert.Same(t, sess, got)
}
